// Package dialog bridges asynchronous file pickers to blocking command handlers.
//
// A Picker reports the user's choice through a completion callback that may
// run on any goroutine. Bridge hands the picker a closure writing into a
// single-use buffered slot and blocks on it, so a handler gets a plain
// return value:
//
//	bridge := dialog.NewBridge(dialog.NewNativePicker(logger), logger)
//	res := bridge.Save(dialog.Options{Title: "Save Markdown File", Filter: filter})
//	if !res.Selected {
//		// user dismissed the dialog
//	}
//
// Pickers:
//   - NativePicker: zenity/kdialog, osascript or PowerShell child process
//   - Hub: the web view itself, over a WebSocket
package dialog
