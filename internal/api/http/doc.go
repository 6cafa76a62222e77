// Package http exposes the editor commands over a local JSON API.
//
// Routes:
//   - GET  /               liveness
//   - GET  /health         registry, dialog host and command counters
//   - GET  /commands       command definitions
//   - POST /invoke/:command run a command with a JSON argument object
//   - POST /logs           forward front-end log entries
package http
