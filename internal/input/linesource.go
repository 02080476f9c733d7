package input

import "strings"

// LineSource is one file's text split into lines, read front to back with a cursor.
type LineSource struct {
	name   string
	lines  []string
	cursor int
}

// NewLineSource splits text into lines once. Lines end at '\n'; a trailing '\r'
// is dropped, and a final newline does not start an extra empty line.
func NewLineSource(name, text string) *LineSource {
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for i, l := range lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return &LineSource{name: name, lines: lines}
}

// Name returns the identity the source was created with.
func (s *LineSource) Name() string { return s.name }

// Exhausted reports whether every line has been read.
func (s *LineSource) Exhausted() bool { return s.cursor == len(s.lines) }

// Next returns the next line and its 0-based index, or ok=false once exhausted.
func (s *LineSource) Next() (line string, index int, ok bool) {
	if s.cursor >= len(s.lines) {
		return "", s.cursor, false
	}
	index = s.cursor
	s.cursor++
	return s.lines[index], index, true
}
