// Package main runs the desktop bundle's pre-build checks.
//
// Usage:
//
//	./prebuild -goos windows -dir src-tauri -env-file build.env
//	./prebuild -icons -source-icon app-icon.png -icon-dir src-tauri/icons
package main
