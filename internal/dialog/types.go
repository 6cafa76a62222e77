package dialog

// Mode distinguishes picking an existing file from choosing a save target.
type Mode string

const (
	ModeOpen Mode = "open"
	ModeSave Mode = "save"
)

// Options describes a dialog invocation.
type Options struct {
	Title  string
	Filter Filter
}

// Result is the one-shot outcome of a dialog: a chosen path or no selection.
type Result struct {
	Path     string
	Selected bool
}

// Chosen returns a Result carrying a path.
func Chosen(path string) Result {
	return Result{Path: path, Selected: true}
}

// NoSelection returns the Result of a dismissed dialog.
func NoSelection() Result {
	return Result{}
}

// Completion receives the dialog outcome. Pickers may call it from any goroutine.
type Completion func(Result)

// Picker presents file dialogs asynchronously. Both methods return
// immediately; done is invoked later, once, with the user's choice.
type Picker interface {
	PickFile(opts Options, done Completion)
	SaveFile(opts Options, done Completion)
}
