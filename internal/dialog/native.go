package dialog

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
)

// CommandRunner runs a chooser process and returns its standard output.
type CommandRunner func(name string, args ...string) ([]byte, error)

// NativePicker shows the platform's own file chooser in a child process.
// Each dialog runs on its own goroutine; the chooser's exit completes it.
type NativePicker struct {
	goos     string
	run      CommandRunner
	lookPath func(string) (string, error)
	logger   *logging.Logger
}

// NativeOption customizes a NativePicker.
type NativeOption func(*NativePicker)

// WithPlatform overrides the detected GOOS.
func WithPlatform(goos string) NativeOption {
	return func(p *NativePicker) { p.goos = goos }
}

// WithRunner replaces process execution.
func WithRunner(run CommandRunner) NativeOption {
	return func(p *NativePicker) { p.run = run }
}

// WithLookPath replaces executable discovery.
func WithLookPath(lookPath func(string) (string, error)) NativeOption {
	return func(p *NativePicker) { p.lookPath = lookPath }
}

// NewNativePicker creates a picker for the running platform.
func NewNativePicker(logger *logging.Logger, opts ...NativeOption) *NativePicker {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &NativePicker{
		goos:     runtime.GOOS,
		run:      runCommand,
		lookPath: exec.LookPath,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PickFile implements Picker.
func (p *NativePicker) PickFile(opts Options, done Completion) {
	go func() { done(p.show(ModeOpen, opts)) }()
}

// SaveFile implements Picker.
func (p *NativePicker) SaveFile(opts Options, done Completion) {
	go func() { done(p.show(ModeSave, opts)) }()
}

func (p *NativePicker) show(mode Mode, opts Options) Result {
	name, args, err := p.command(mode, opts)
	if err != nil {
		p.logger.Error("No native file chooser available", zap.String("platform", p.goos), zap.Error(err))
		return NoSelection()
	}

	out, err := p.run(name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// every supported chooser exits non-zero on cancel
			return NoSelection()
		}
		p.logger.Error("File chooser failed", zap.String("command", name), zap.Error(err))
		return NoSelection()
	}

	path := strings.TrimRight(string(out), "\r\n")
	if path == "" {
		return NoSelection()
	}
	return Chosen(path)
}

// command builds the chooser invocation for the configured platform.
func (p *NativePicker) command(mode Mode, opts Options) (string, []string, error) {
	switch p.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := p.lookPath("zenity"); err == nil {
			return "zenity", zenityArgs(mode, opts), nil
		}
		if _, err := p.lookPath("kdialog"); err == nil {
			return "kdialog", kdialogArgs(mode, opts), nil
		}
		return "", nil, fmt.Errorf("neither zenity nor kdialog found on PATH")
	case "darwin":
		return "osascript", []string{"-e", appleScript(mode, opts)}, nil
	case "windows":
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-STA", "-Command", powerShellScript(mode, opts)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform %q", p.goos)
	}
}

func zenityArgs(mode Mode, opts Options) []string {
	args := []string{"--file-selection", "--title=" + opts.Title}
	if mode == ModeSave {
		args = append(args, "--save", "--confirm-overwrite")
	}
	if exts := opts.Filter.normalized(); len(exts) > 0 {
		globs := make([]string, len(exts))
		for i, ext := range exts {
			globs[i] = "*." + ext
		}
		args = append(args, "--file-filter="+filterLabel(opts.Filter)+" | "+strings.Join(globs, " "))
	}
	return args
}

func kdialogArgs(mode Mode, opts Options) []string {
	flag := "--getopenfilename"
	if mode == ModeSave {
		flag = "--getsavefilename"
	}
	return []string{flag, ".", kdialogFilter(opts.Filter), "--title", opts.Title}
}

func kdialogFilter(f Filter) string {
	exts := f.normalized()
	globs := make([]string, len(exts))
	for i, ext := range exts {
		globs[i] = "*." + ext
	}
	return strings.Join(globs, " ") + "|" + filterLabel(f)
}

func appleScript(mode Mode, opts Options) string {
	prompt := appleQuote(opts.Title)
	if mode == ModeSave {
		return fmt.Sprintf("POSIX path of (choose file name with prompt %s)", prompt)
	}
	exts := opts.Filter.normalized()
	if len(exts) == 0 {
		return fmt.Sprintf("POSIX path of (choose file with prompt %s)", prompt)
	}
	quoted := make([]string, len(exts))
	for i, ext := range exts {
		quoted[i] = appleQuote(ext)
	}
	return fmt.Sprintf("POSIX path of (choose file with prompt %s of type {%s})", prompt, strings.Join(quoted, ", "))
}

func powerShellScript(mode Mode, opts Options) string {
	class := "OpenFileDialog"
	if mode == ModeSave {
		class = "SaveFileDialog"
	}
	exts := opts.Filter.normalized()
	globs := make([]string, len(exts))
	for i, ext := range exts {
		globs[i] = "*." + ext
	}
	filter := "All files (*.*)|*.*"
	if len(globs) > 0 {
		pattern := strings.Join(globs, ";")
		filter = fmt.Sprintf("%s (%s)|%s", filterLabel(opts.Filter), pattern, pattern)
	}
	return strings.Join([]string{
		"Add-Type -AssemblyName System.Windows.Forms",
		"$d = New-Object System.Windows.Forms." + class,
		"$d.Title = " + psQuote(opts.Title),
		"$d.Filter = " + psQuote(filter),
		"if ($d.ShowDialog() -eq [System.Windows.Forms.DialogResult]::OK) { $d.FileName }",
	}, "; ")
}

func filterLabel(f Filter) string {
	if f.Label != "" {
		return f.Label
	}
	return "Files"
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
