// Package hostfs copies a host directory into an in-memory snapshot.
//
// The import is one-way: the host is read once at start-up and nothing is ever
// written back to it.
package hostfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// ErrNotADirectory is returned when the import root is not a directory.
var ErrNotADirectory = errors.New("import root is not a directory")

// ImportError records the host path that could not be imported.
type ImportError struct {
	Path  string
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Cause)
}
func (e *ImportError) Unwrap() error { return e.Cause }

// Options limits what is imported.
type Options struct {
	MaxFileSize int64
	MaxFiles    int
	Logger      *zap.Logger
}

// Report summarises an import.
type Report struct {
	Files     int
	Dirs      int
	Skipped   int
	Truncated bool
}

// Import reads the directory tree at root into a new Directory.
// Ignored, binary, oversized and non-regular files are skipped; the walk stops once
// MaxFiles files have been imported.
func Import(root string, opts Options) (*vfs.Directory, Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, Report{}, &ImportError{Path: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, Report{}, &ImportError{Path: root, Cause: ErrNotADirectory}
	}

	ignore, err := NewIgnoreMatcher(root)
	if err != nil {
		logger.Warn("gitignore unavailable, importing everything", zap.Error(err))
		ignore = &IgnoreMatcher{}
	}

	tree := vfs.New(vfs.NewDirectory())
	var report Report

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			report.Skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := vfs.Path(splitPath(rel))

		if shouldSkip(d, rel, target, ignore) {
			report.Skipped++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			next, err := tree.Put(target, vfs.NewDirectory())
			if err != nil {
				return err
			}
			tree = next
			report.Dirs++
			return nil
		}

		if opts.MaxFiles > 0 && report.Files >= opts.MaxFiles {
			report.Truncated = true
			return filepath.SkipAll
		}

		content, ok := readText(path, d, opts.MaxFileSize, logger)
		if !ok {
			report.Skipped++
			return nil
		}
		next, err := tree.Put(target, vfs.NewFile(content))
		if err != nil {
			return err
		}
		tree = next
		report.Files++
		return nil
	})
	if walkErr != nil {
		return nil, report, &ImportError{Path: root, Cause: walkErr}
	}

	logger.Info("host directory imported",
		zap.String("root", root),
		zap.Int("files", report.Files),
		zap.Int("dirs", report.Dirs),
		zap.Int("skipped", report.Skipped),
		zap.Bool("truncated", report.Truncated),
	)
	return tree.Root(), report, nil
}

func shouldSkip(d fs.DirEntry, rel string, target vfs.Path, ignore *IgnoreMatcher) bool {
	if d.IsDir() && d.Name() == ".git" {
		return true
	}
	if !d.IsDir() && !d.Type().IsRegular() {
		return true
	}
	if len(target) == 0 || !vfs.ValidName(target.Base()) {
		return true
	}
	return ignore.ShouldIgnore(rel, d.IsDir())
}

// readText returns the file content if it is small enough and detected as text.
func readText(path string, d fs.DirEntry, maxSize int64, logger *zap.Logger) (string, bool) {
	info, err := d.Info()
	if err != nil {
		return "", false
	}
	if maxSize > 0 && info.Size() > maxSize {
		logger.Debug("skipping large file", zap.String("path", path), zap.Int64("size", info.Size()))
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if !isText(data) {
		return "", false
	}
	return string(data), true
}

func isText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Mount imports hostDir and places it at /home/user/<base name of hostDir> in fs.
func Mount(snapshot *vfs.Filesystem, hostDir string, opts Options) (*vfs.Filesystem, vfs.Path, Report, error) {
	abs, err := filepath.Abs(hostDir)
	if err != nil {
		return nil, nil, Report{}, &ImportError{Path: hostDir, Cause: err}
	}

	dir, report, err := Import(abs, opts)
	if err != nil {
		return nil, nil, report, err
	}

	name := filepath.Base(abs)
	if !vfs.ValidName(name) {
		name = "host"
	}
	target := vfs.Home.Child(name)

	next, err := snapshot.Put(target, dir)
	if err != nil {
		return nil, nil, report, &ImportError{Path: hostDir, Cause: err}
	}
	return next, target, report, nil
}
