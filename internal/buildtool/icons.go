package buildtool

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// requiredIcons must exist in the icon directory for every bundle target.
var requiredIcons = []string{"icon.ico", "icon.png", "icon.icns"}

// IconFile is a generated icon.
type IconFile struct {
	Name string
	Size int64
}

func checkIcons(opts Options, r *Report) {
	source := opts.SourceIcon
	if source == "" {
		source = "app-icon.png"
	}
	iconDir := opts.IconDir
	if iconDir == "" {
		iconDir = "icons"
	}

	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		r.warn("Source icon does not exist: %s", source)
		r.warn("Create a PNG named %s in the project root", filepath.Base(source))
		r.Err = fmt.Errorf("%w: %s", ErrSourceIconMissing, source)
		return
	}
	r.info("Source icon: %s (%s)", source, kilobytes(info.Size()))

	mt, err := mimetype.DetectFile(source)
	switch {
	case err != nil:
		r.warn("Could not read source icon: %v", err)
	case !mt.Is("image/png"):
		r.warn("Source icon is %s (%s), not PNG; convert it before generating icons", mt.String(), mt.Extension())
	}

	icons, err := listIcons(iconDir)
	if err != nil {
		r.warn("Icon directory not readable: %s (%v)", iconDir, err)
		return
	}
	r.Icons = icons

	present := make(map[string]bool, len(icons))
	r.info("Icons in %s:", iconDir)
	for _, icon := range icons {
		present[icon.Name] = true
		r.info("- %s (%s)", icon.Name, kilobytes(icon.Size))
	}
	for _, name := range requiredIcons {
		if !present[name] {
			r.warn("Missing icon: %s", filepath.Join(iconDir, name))
		}
	}
}

// listIcons returns the files under dir sorted by relative name.
func listIcons(dir string) ([]IconFile, error) {
	var (
		mu    sync.Mutex
		icons []IconFile
	)

	// fastwalk calls back from several goroutines
	err := fastwalk.Walk(&fastwalk.Config{Follow: false}, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}

		mu.Lock()
		icons = append(icons, IconFile{Name: filepath.ToSlash(rel), Size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(icons, func(i, j int) bool {
		return strings.Compare(icons[i].Name, icons[j].Name) < 0
	})
	return icons, nil
}

func kilobytes(n int64) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}
