// Package buildtool implements the pre-build checks for the desktop bundle.
//
// On Windows it locates the resource compiler, falling back to the usual
// Windows Kits install directories, and reports whether a custom resource
// script is present. On every platform it can verify the application icons.
// Nothing here affects the backend at runtime.
package buildtool
