// Package editor implements the Markdown editor's document commands:
// greeting, dialog-driven open and save, and path queries.
package editor
