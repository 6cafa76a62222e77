// Package types provides shared data structures for the editor backend.
//
// Core Types:
//   - Service: Provider definition with its tools
//   - Tool: A command the front-end invokes by ID
//   - Context: Execution context for a command
//   - Result: Standard command result envelope
//
// Transport Types:
//   - InvokeRequest: Command arguments
//   - DialogMessage: Front-end dialog host frames
//
// Example Usage:
//
//	res := types.Success(fileInfo)
//	res = types.Failure("no file selected")
package types
