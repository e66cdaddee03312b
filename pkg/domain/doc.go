/*
Package domain contains the request-scoped models shared by every Skylark adapter.

Nothing in this package performs I/O. The types describe a single chat turn as it
travels from the HTTP client, through the model, into the business-data tool and back.

# Key Entities

  - Message: one chat turn (role plus ordered parts) as sent by the UI.
  - Part: a text, tool-call or tool-result fragment of a Message.
  - ToolCall: the model's request to invoke the business-data tool.
  - ToolResult: the outcome of a ToolCall as seen by the model and the UI.
  - StepEvent: the diagnostic record emitted after each model step.
*/
package domain
