/*
Package monday contains the glue between the model and the Monday.com MCP server.

It owns the tool schema exposed to the model, the repair of the loosely-typed
argument bag the model produces (Normalize), and the reduction of verbose
payloads into a token-economical form (Classify, Shape, Encode).
*/
package monday
