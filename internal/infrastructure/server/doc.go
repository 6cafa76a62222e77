// Package server assembles the backend: configuration, logging, metrics,
// the dialog backend, the editor provider and the HTTP surface.
package server
