package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrNoValidFiles is returned when none of the given file paths can be searched.
var ErrNoValidFiles = errors.New("no valid files found")

// PathError describes a path rejected during resolution.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return "path '" + e.Path + "': " + e.Reason + ": " + e.Err.Error()
	}
	return "path '" + e.Path + "': " + e.Reason
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// canonicalize returns the absolute, symlink-free form of path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveFiles keeps the paths that exist, are regular files and can be
// canonicalized, in input order and without duplicates. Rejected paths are
// logged as warnings; ErrNoValidFiles is returned if nothing is left.
func resolveFiles(paths []string, logger *log.Logger) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	var valid []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("path does not exist", "path", p)
			} else {
				logger.Warn("cannot access path", "path", p, "err", err)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Warn("not a valid file", "path", p)
			continue
		}
		canonical, err := canonicalize(p)
		if err != nil {
			logger.Warn("cannot canonicalize path", "path", p, "err", err)
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		valid = append(valid, canonical)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidFiles
	}
	return valid, nil
}

// resolveDir checks that dir exists and is a directory and returns its canonical path.
func resolveDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &PathError{Path: dir, Reason: "directory does not exist", Err: err}
		}
		return "", &PathError{Path: dir, Reason: "cannot access directory", Err: err}
	}
	if !info.IsDir() {
		return "", &PathError{Path: dir, Reason: "not a valid directory"}
	}
	canonical, err := canonicalize(dir)
	if err != nil {
		return "", &PathError{Path: dir, Reason: "cannot canonicalize path", Err: err}
	}
	return canonical, nil
}
