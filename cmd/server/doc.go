// Package main runs the BlogWriter backend.
//
// The desktop shell starts this process next to its web view. The web view
// invokes editor commands over HTTP on the loopback interface and, with the
// frontend dialog backend, hosts the file dialogs over a WebSocket.
//
// Configuration:
//   - Environment variables (PORT, HOST, DIALOG_BACKEND, LOG_LEVEL, ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 1430 -dialog native
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
