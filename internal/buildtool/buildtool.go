package buildtool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const (
	resourceCompiler = "rc.exe"
	// ResourceScript is the custom Windows resource script picked up when present.
	ResourceScript = "blogwriter.rc"
)

// windowsKitDirs are probed in order when rc.exe is not on the search path.
var windowsKitDirs = []string{
	`C:\Program Files (x86)\Windows Kits\10\bin\10.0.22621.0\x64`,
	`C:\Program Files (x86)\Windows Kits\10\bin\10.0.22000.0\x64`,
	`C:\Program Files (x86)\Windows Kits\10\bin\10.0.19041.0\x64`,
	`C:\Program Files (x86)\Windows Kits\10\bin\x64`,
}

// ErrSourceIconMissing means icon checking was requested without a source icon.
var ErrSourceIconMissing = errors.New("source icon does not exist")

// Level is the severity of a build message.
type Level int

const (
	Info Level = iota
	Warning
)

func (l Level) String() string {
	if l == Warning {
		return "warning"
	}
	return "info"
}

// Message is one line of build output.
type Message struct {
	Level Level
	Text  string
}

// Env is the host the build step inspects.
type Env struct {
	GOOS     string
	LookPath func(file string) (string, error)
	Stat     func(name string) (fs.FileInfo, error)
	Getenv   func(key string) string
}

// HostEnv returns the environment of the running process.
func HostEnv() Env {
	return Env{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Stat:     os.Stat,
		Getenv:   os.Getenv,
	}
}

// Options selects what the build step checks.
type Options struct {
	// Dir holds the resource script. Empty means the working directory.
	Dir string
	// CheckIcons enables source icon and generated icon verification.
	CheckIcons bool
	SourceIcon string
	IconDir    string
}

// Report is the outcome of a build step run.
type Report struct {
	Messages []Message
	// CompilerPath is where rc.exe was found, if anywhere.
	CompilerPath string
	// PathValue is PATH extended with a fallback compiler directory. Empty
	// when the compiler was on the search path already or not found at all.
	PathValue string
	// Icons lists the icon files found, relative to the icon directory.
	Icons []IconFile
	// Err is set when the step must fail the build.
	Err error
}

func (r *Report) info(format string, args ...interface{}) {
	r.Messages = append(r.Messages, Message{Level: Info, Text: fmt.Sprintf(format, args...)})
}

func (r *Report) warn(format string, args ...interface{}) {
	r.Messages = append(r.Messages, Message{Level: Warning, Text: fmt.Sprintf(format, args...)})
}

// Warnings returns the warning messages.
func (r *Report) Warnings() []Message {
	var out []Message
	for _, m := range r.Messages {
		if m.Level == Warning {
			out = append(out, m)
		}
	}
	return out
}

// Run performs the build step. It never changes the build's inputs; it only
// reports what it found.
func Run(env Env, opts Options) *Report {
	env = env.withDefaults()
	r := &Report{}
	r.info("Preparing desktop build for %s", env.GOOS)

	if env.GOOS == "windows" {
		findResourceCompiler(env, r)
		checkResourceScript(env, opts, r)
	}

	if opts.CheckIcons {
		checkIcons(opts, r)
	}

	if r.Err == nil {
		r.info("Build preparation finished")
	}
	return r
}

func (e Env) withDefaults() Env {
	host := HostEnv()
	if e.GOOS == "" {
		e.GOOS = host.GOOS
	}
	if e.LookPath == nil {
		e.LookPath = host.LookPath
	}
	if e.Stat == nil {
		e.Stat = host.Stat
	}
	if e.Getenv == nil {
		e.Getenv = host.Getenv
	}
	return e
}

func findResourceCompiler(env Env, r *Report) {
	r.info("Checking for the Windows resource compiler...")

	path, err := env.LookPath(resourceCompiler)
	if err == nil {
		r.CompilerPath = path
		r.info("Found %s: %s", resourceCompiler, path)
		return
	}
	if !errors.Is(err, exec.ErrNotFound) {
		r.warn("Error while looking up %s: %v", resourceCompiler, err)
		return
	}

	r.warn("%s not found; resource compilation may fail", resourceCompiler)
	r.warn("Make sure the Windows SDK is installed and %s is on PATH", resourceCompiler)
	r.warn("Trying common Windows Kits locations...")

	for _, dir := range windowsKitDirs {
		candidate := dir + `\` + resourceCompiler
		if _, err := env.Stat(candidate); err != nil {
			continue
		}
		r.CompilerPath = candidate
		r.PathValue = env.Getenv("PATH") + ";" + dir
		r.warn("Found %s in %s", resourceCompiler, dir)
		return
	}
	r.warn("%s was not found in any Windows Kits location", resourceCompiler)
}

func checkResourceScript(env Env, opts Options, r *Report) {
	r.info("Configuring Windows resources...")

	script := filepath.Join(opts.Dir, ResourceScript)
	if _, err := env.Stat(script); err != nil {
		r.info("No custom resource script; using the default resource configuration")
		return
	}
	r.info("Using custom resource script: %s", script)
}
