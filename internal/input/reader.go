package input

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNotUTF8 is returned when file content is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("content is not valid UTF-8")

// DefaultMmapThreshold is the file size at which the adaptive reader switches to mmap.
const DefaultMmapThreshold = 4 * 1024 * 1024

// ReadResult holds the data read from a file and a cleanup function.
// Data may point into a pooled buffer or a mapping; it is only valid until Closer runs.
type ReadResult struct {
	Data   []byte
	Closer func() error
}

func noopCloser() error { return nil }

// Reader reads file content into a byte slice.
type Reader interface {
	Read(path string) (ReadResult, error)
}

// ReadText reads path with r and returns its content as a string.
// The string is a copy, so the underlying buffer is released before returning.
func ReadText(r Reader, path string) (string, error) {
	res, err := r.Read(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if res.Closer != nil {
			res.Closer()
		}
	}()

	if !utf8.Valid(res.Data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(res.Data), nil
}

// Load reads path with r and wraps its text in a LineSource named name.
func Load(r Reader, path, name string) (*LineSource, error) {
	text, err := ReadText(r, path)
	if err != nil {
		return nil, err
	}
	return NewLineSource(name, text), nil
}
