/*
Package skylark is a conversational business intelligence agent over Monday.com.

A chat client posts its conversation history; Skylark hands it to a hosted LLM
that has exactly one tool, call_monday_tool, which proxies to the Monday.com
MCP server running as a subprocess. Tool arguments are repaired before
dispatch and tool results are compressed before the model sees them, and the
whole turn is streamed back in the AI SDK UI message stream format.

# Concept

A turn is a bounded loop of at most five model calls:

	client -> POST /api/chat -> sanitize -> model
	model  -> call_monday_tool -> normalize -> MCP subprocess -> shape -> model
	model  -> final text -> UI message stream -> client

# Key Features

  - Argument repair: placeholder cursors are stripped, "board-123" identifiers
    are coerced, and paged reads are capped at ten items.
  - Token economy: item pages are reduced to name plus column texts.
  - Failure as text: every tool failure reaches the model as "Error: <message>"
    so it can explain the problem instead of aborting the turn.
  - Observability: structured slog records per step and Prometheus metrics.

# Usage

Run the HTTP server:

	export GROQ_API_KEY=...
	export MONDAY_API_TOKEN=...
	skylark serve --addr :8080

Ask a single question from the terminal:

	skylark ask "How is our pipeline by sector?"

Expose the normalized tool to other MCP agents:

	skylark mcp

The packages under pkg/ can also be embedded directly; see
pkg/conversation for the turn handler and pkg/dispatch for the tool pipeline.
*/
package skylark
