package editor

import (
	"github.com/GriffinCanCode/BlogWriter/backend/internal/dialog"
)

// FileInfo is a snapshot of a path's filesystem state at query time.
type FileInfo struct {
	Exists       bool    `json:"exists"`
	IsFile       bool    `json:"is_file"`
	IsDir        bool    `json:"is_dir"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified"` // Unix seconds as decimal text
	Readonly     bool    `json:"readonly"`
	Path         string  `json:"path"`
}

// Dialogs obtains paths from the user, blocking until they decide.
type Dialogs interface {
	Open(opts dialog.Options) dialog.Result
	Save(opts dialog.Options) dialog.Result
}

// Config holds the document filter and read limit.
type Config struct {
	Filter       dialog.Filter
	MaxOpenBytes int64
}

const (
	saveTitle = "Save Markdown File"
	openTitle = "Open Markdown File"

	// charsetSample bounds how much of a rejected file is fed to charset detection.
	charsetSample = 64 * 1024
)
