/*
Package ports defines the driven ports (interfaces) for Skylark.

These interfaces decouple the turn logic from the concrete model provider, the
external business-data tool transport and the optional result cache.

# Key Interfaces

  - Caller: invokes one named operation of the business-data tool with an argument bag.
  - ChatModel: generates a model response for a conversation (langchaingo compatible).
  - ResultCache: stores raw tool payloads keyed by operation and arguments.
*/
package ports
