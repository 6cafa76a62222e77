package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/dialog"
)

// Greet returns the greeting shown by the front-end's connectivity check.
func (p *Provider) Greet(name string) string {
	p.logger.Info("Greeting user", zap.String("name", name))
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// SaveFile asks for a target path and writes content there, replacing any existing file.
// The parent directory must already exist.
func (p *Provider) SaveFile(content string) error {
	res := p.dialogs.Save(dialog.Options{Title: saveTitle, Filter: p.filter})
	if !res.Selected {
		return ErrNoSelection
	}
	path := res.Path

	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); err != nil {
		p.logger.Error("Parent directory of save path does not exist", zap.String("parent", parent))
		return fmt.Errorf("%w: %s", ErrParentMissing, parent)
	}

	p.logger.Info("Saving file", zap.String("path", path), zap.Int("bytes", len(content)))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.logger.Error("Failed to save file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to save file '%s': %w", path, err)
	}

	p.logger.Info("File saved", zap.String("path", path))
	return nil
}

// OpenFile asks for a file and returns its text content.
// Files above the size limit are rejected before anything is read.
func (p *Provider) OpenFile() (string, error) {
	res := p.dialogs.Open(dialog.Options{Title: openTitle, Filter: p.filter})
	if !res.Selected {
		p.logger.Info("User cancelled opening a file")
		return "", ErrNoSelection
	}
	path := res.Path

	info, err := os.Stat(path)
	if notExist(err) {
		p.logger.Error("File does not exist", zap.String("path", path))
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	// any other stat failure resurfaces from the read below
	if err == nil && info.Size() > p.maxOpen {
		p.logger.Error("File too large", zap.String("path", path), zap.Int64("bytes", info.Size()))
		return "", fmt.Errorf("%w: '%s' is %d bytes, limit is %d", ErrTooLarge, path, info.Size(), p.maxOpen)
	}

	p.logger.Info("Reading file", zap.String("path", path))
	data, err := readBounded(path, p.maxOpen)
	if errors.Is(err, ErrTooLarge) {
		p.logger.Error("File grew past the size limit while reading", zap.String("path", path))
		return "", fmt.Errorf("%w: '%s' exceeds limit of %d bytes", ErrTooLarge, path, p.maxOpen)
	}
	if err != nil {
		p.logger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if !utf8.Valid(data) {
		charset := detectCharset(data)
		p.logger.Error("File is not UTF-8 text", zap.String("path", path), zap.String("charset", charset))
		return "", fmt.Errorf("failed to read file '%s': %w (looks like %s)", path, ErrInvalidText, charset)
	}

	p.logger.Info("File read", zap.String("path", path), zap.Int("bytes", len(data)))
	return string(data), nil
}

// CheckFileExists reports whether path names an existing regular file.
// Directories and other file types report false.
func (p *Provider) CheckFileExists(path string) (bool, error) {
	p.logger.Debug("Checking file existence", zap.String("path", path))

	info, err := os.Stat(path)
	if notExist(err) {
		return false, nil
	}
	if err != nil {
		p.logger.Error("Failed to check file status", zap.String("path", path), zap.Error(err))
		return false, fmt.Errorf("failed to check file '%s': %w", path, err)
	}

	return info.Mode().IsRegular(), nil
}

// GetFileInfo returns a snapshot of path. A missing path is not an error:
// the snapshot just reports exists=false.
func (p *Provider) GetFileInfo(path string) (FileInfo, error) {
	p.logger.Debug("Getting file info", zap.String("path", path))

	fi := FileInfo{Path: path}
	info, err := os.Stat(path)
	if notExist(err) {
		return fi, nil
	}
	if err != nil {
		p.logger.Error("Failed to get file info", zap.String("path", path), zap.Error(err))
		return FileInfo{}, fmt.Errorf("failed to get info for '%s': %w", path, err)
	}

	fi.Exists = true
	fi.IsFile = info.Mode().IsRegular()
	fi.IsDir = info.IsDir()
	fi.Size = info.Size()
	fi.Readonly = info.Mode().Perm()&0o222 == 0
	if mod := info.ModTime(); !mod.IsZero() && mod.Unix() >= 0 {
		secs := strconv.FormatInt(mod.Unix(), 10)
		fi.LastModified = &secs
	}
	return fi, nil
}

// CreateDirectory creates path and any missing parents. An existing
// directory is left alone; an existing file is a conflict.
func (p *Provider) CreateDirectory(path string) error {
	p.logger.Info("Creating directory", zap.String("path", path))

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			p.logger.Info("Directory already exists", zap.String("path", path))
			return nil
		}
		p.logger.Error("Path exists but is not a directory", zap.String("path", path))
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		p.logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create directory '%s': %w", path, err)
	}

	p.logger.Info("Directory created", zap.String("path", path))
	return nil
}

// readBounded reads at most limit bytes of path. A file that holds more
// than limit bytes by the time it is read fails with ErrTooLarge.
func readBounded(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

func detectCharset(data []byte) string {
	if len(data) > charsetSample {
		data = data[:charsetSample]
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return "binary data"
	}
	return strings.ToLower(result.Charset)
}
