package domain

import "errors"

// ErrMissingToken is returned when the business-data tool credential is not configured.
// Callers prefix it with the variable name they read.
var ErrMissingToken = errors.New("environment variable is missing")

// ErrToolFailed is returned when the external tool answers with an error result.
var ErrToolFailed = errors.New("tool reported an error")

// ErrUnknownTool is returned when the model asks for a tool that is not registered.
var ErrUnknownTool = errors.New("tool not found")

// ErrEmptyResponse is returned when the model provider answers with no choices.
var ErrEmptyResponse = errors.New("empty response from model")

// ErrInvalidHistory is returned when the client history cannot be used.
var ErrInvalidHistory = errors.New("invalid chat history")
