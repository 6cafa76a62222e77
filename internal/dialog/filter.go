package dialog

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter restricts a dialog to files with the given extensions.
type Filter struct {
	Label      string
	Extensions []string
}

// Pattern renders the filter as a glob, e.g. "*.md" or "*.{md,markdown}".
func (f Filter) Pattern() string {
	exts := f.normalized()
	switch len(exts) {
	case 0:
		return "*"
	case 1:
		return "*." + exts[0]
	default:
		return "*.{" + strings.Join(exts, ",") + "}"
	}
}

// Matches reports whether the base name of path passes the filter.
// Matching ignores case; an empty filter accepts everything.
func (f Filter) Matches(path string) bool {
	if len(f.normalized()) == 0 {
		return true
	}
	name := strings.ToLower(filepath.Base(path))
	ok, err := doublestar.Match(f.Pattern(), name)
	return err == nil && ok
}

func (f Filter) normalized() []string {
	exts := make([]string, 0, len(f.Extensions))
	for _, ext := range f.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
