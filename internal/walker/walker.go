package walker

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// FileEntry represents a file discovered during directory traversal.
type FileEntry struct {
	Path string
}

// WalkOptions configures directory traversal behavior.
type WalkOptions struct {
	Gitignore bool // apply .gitignore files and skip VCS directories
	NoHidden  bool // skip dot files and dot directories
}

// Walk traverses root and sends every regular file on the returned channel.
// Symlinks are not followed. Errors for unreadable entries are sent on the error
// channel and the walk continues. Both channels are closed when the walk ends.
func Walk(root string, opts WalkOptions) (<-chan FileEntry, <-chan error) {
	fileCh := make(chan FileEntry, 256)
	errCh := make(chan error, 16)

	go func() {
		defer close(fileCh)
		defer close(errCh)

		layers := make(map[string][]ignoreLayer)

		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				errCh <- &WalkError{Path: path, Err: err}
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			name := d.Name()
			parent := layers[filepath.Dir(path)]

			if d.IsDir() {
				if path != root {
					if skipDir(name, opts) || isIgnoredByLayers(parent, path, true) {
						return filepath.SkipDir
					}
				}
				if opts.Gitignore {
					layers[path] = childLayers(parent, path)
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if opts.NoHidden && isHidden(name) {
				return nil
			}
			if isIgnoredByLayers(parent, path, false) {
				return nil
			}
			fileCh <- FileEntry{Path: path}
			return nil
		})
	}()

	return fileCh, errCh
}

// Collect drains Walk into a sorted slice of paths. onErr, if set, receives each
// walk error as it happens.
func Collect(root string, opts WalkOptions, onErr func(error)) []string {
	fileCh, errCh := Walk(root, opts)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for err := range errCh {
			if onErr != nil {
				onErr(err)
			}
		}
	}()

	var files []string
	for entry := range fileCh {
		files = append(files, entry.Path)
	}
	<-done

	sort.Strings(files)
	return files
}

// skipDir returns true for directories that should be skipped.
// VCS directories are skipped when gitignore rules apply; dot directories when
// hidden entries are excluded.
func skipDir(name string, opts WalkOptions) bool {
	if opts.Gitignore {
		switch name {
		case ".git", ".svn", ".hg":
			return true
		}
	}
	return opts.NoHidden && isHidden(name)
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// WalkError represents an error during directory traversal.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return "walk " + e.Path + ": " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}
