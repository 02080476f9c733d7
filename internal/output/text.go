package output

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dew667/rspfind/internal/matcher"
)

// Report is a finished scan: files in output order and their records.
type Report interface {
	Files() []string
	Records(path string) []matcher.Record
}

// TextFormatter formats match records as the human-readable report, either
// decorated for a terminal or pure for output.txt.
type TextFormatter struct {
	renderer *Renderer
	styles   Styles
	mode     Mode
	root     string
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(renderer *Renderer, styles Styles, mode Mode) *TextFormatter {
	return &TextFormatter{renderer: renderer, styles: styles, mode: mode}
}

// WithRoot makes headers name files by their path relative to root, the
// directory a recursive scan started from.
func (f *TextFormatter) WithRoot(root string) *TextFormatter {
	f.root = root
	return f
}

// Format appends the report for every file of rep to buf.
func (f *TextFormatter) Format(buf []byte, rep Report) []byte {
	var files []string
	for _, path := range rep.Files() {
		if len(rep.Records(path)) > 0 {
			files = append(files, path)
		}
	}
	names := f.headerNames(files)
	for i, path := range files {
		buf = f.formatFile(buf, names[i], rep.Records(path))
	}
	return buf
}

// FormatFile appends the header and one line per record. A file without records
// contributes nothing.
func (f *TextFormatter) FormatFile(buf []byte, path string, records []matcher.Record) []byte {
	return f.formatFile(buf, f.headerNames([]string{path})[0], records)
}

func (f *TextFormatter) formatFile(buf []byte, name string, records []matcher.Record) []byte {
	if len(records) == 0 {
		return buf
	}
	buf = append(buf, "Found the following matches in file '"...)
	buf = append(buf, f.style(f.styles.Filename, name)...)
	buf = append(buf, "': \n"...)
	for _, r := range records {
		buf = f.FormatRecord(buf, r)
	}
	return buf
}

// headerNames returns the name shown for each path. Under a root that is the
// relative path. Otherwise it is the base name, or the full path when two of
// the printed files share a base name.
func (f *TextFormatter) headerNames(paths []string) []string {
	names := make([]string, len(paths))
	if f.root != "" {
		for i, p := range paths {
			rel, err := filepath.Rel(f.root, p)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				rel = p
			}
			names[i] = rel
		}
		return names
	}

	seen := make(map[string]int, len(paths))
	for _, p := range paths {
		seen[filepath.Base(p)]++
	}
	for i, p := range paths {
		names[i] = filepath.Base(p)
		if seen[names[i]] > 1 {
			names[i] = p
		}
	}
	return names
}

// FormatRecord appends a single line:
//
//	line number: <N> position: [<s>-<e>, ...] line content: <rendered>
//
// Line numbers and positions are 1-based and inclusive.
func (f *TextFormatter) FormatRecord(buf []byte, r matcher.Record) []byte {
	buf = append(buf, "line number: "...)
	buf = append(buf, f.style(f.styles.LineNum, strconv.Itoa(r.LineNumber+1))...)
	buf = append(buf, " position: "...)
	buf = append(buf, f.style(f.styles.Separator, "[")...)
	for i, span := range r.Spans() {
		if i > 0 {
			buf = append(buf, f.style(f.styles.Separator, ", ")...)
		}
		buf = append(buf, f.style(f.styles.Position, strconv.Itoa(span[0]))...)
		buf = append(buf, f.style(f.styles.Separator, "-")...)
		buf = append(buf, f.style(f.styles.Position, strconv.Itoa(span[1]))...)
	}
	buf = append(buf, f.style(f.styles.Separator, "]")...)
	buf = append(buf, " line content: "...)
	buf = append(buf, f.renderer.Render(r.LineText, r.Query, r.Offsets, f.mode)...)
	buf = append(buf, '\n')
	return buf
}

func (f *TextFormatter) style(s lipgloss.Style, text string) string {
	if f.mode == Pure {
		return text
	}
	return s.Render(text)
}
