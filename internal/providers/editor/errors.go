package editor

import (
	"errors"
	"io/fs"
	"syscall"
)

var (
	// ErrNoSelection means the user dismissed the file dialog.
	ErrNoSelection = errors.New("no file selected")
	// ErrNotFound means the chosen file does not exist.
	ErrNotFound = errors.New("file does not exist")
	// ErrTooLarge means the file exceeds the open size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrParentMissing means the save target's directory does not exist.
	ErrParentMissing = errors.New("parent directory does not exist")
	// ErrNotDirectory means a path exists but is not a directory.
	ErrNotDirectory = errors.New("path exists but is not a directory")
	// ErrInvalidText means the file content is not valid UTF-8.
	ErrInvalidText = errors.New("content is not valid UTF-8")
)

// notExist treats a missing path, or one running through a regular file, as absent.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
