package output

import (
	"strings"
	"unicode/utf8"
)

// Mode selects between terminal decoration and plain text.
type Mode int

const (
	Decorated Mode = iota // colored for a terminal
	Pure                  // plain text, stable for files and tests
)

const (
	DefaultMaxWidth     = 80
	DefaultContextChars = 20
	ellipsis            = "..."
)

// RendererConfig holds the width settings of a Renderer.
type RendererConfig struct {
	MaxWidth     int // display budget in code points
	ContextChars int // code points kept on each side of the match cluster
}

// Renderer produces a bounded-width display string for a matched line.
// It holds no mutable state; the same input always renders the same output.
type Renderer struct {
	maxWidth     int
	contextChars int
	styles       Styles
}

// NewRenderer creates a Renderer. Zero config fields take the defaults; styles are
// used only in Decorated mode.
func NewRenderer(cfg RendererConfig, styles Styles) *Renderer {
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = DefaultMaxWidth
	}
	if cfg.ContextChars <= 0 {
		cfg.ContextChars = DefaultContextChars
	}
	return &Renderer{
		maxWidth:     cfg.MaxWidth,
		contextChars: cfg.ContextChars,
		styles:       styles,
	}
}

// Render returns line with each occurrence [o, o+len(query)) highlighted.
// Lines longer than MaxWidth are cut to a window around the occurrences with "..."
// marking the cut ends. Indexing is by code point; out-of-range offsets are ignored.
func (r *Renderer) Render(line, query string, offsets []int, mode Mode) string {
	chars := []rune(line)
	qlen := utf8.RuneCountInString(query)

	if len(chars) <= r.maxWidth {
		return r.highlight(chars, qlen, offsets, mode)
	}

	if len(offsets) == 0 {
		end := clamp(r.maxWidth-len(ellipsis), 0, len(chars))
		return r.plain(string(chars[:end])+ellipsis, mode)
	}

	start, end := r.window(len(chars), offsets[0], offsets[len(offsets)-1]+qlen)

	local := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if off >= start && off < end {
			local = append(local, off-start)
		}
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(r.plain(ellipsis, mode))
	}
	sb.WriteString(r.highlight(chars[start:end], qlen, local, mode))
	if end < len(chars) {
		sb.WriteString(r.plain(ellipsis, mode))
	}
	return sb.String()
}

// window picks the [start, end) code point range shown for a long line whose
// match cluster spans [first, last).
func (r *Renderer) window(n, first, last int) (int, int) {
	first = clamp(first, 0, n)
	last = clamp(last, first, n)

	start := clamp(first-r.contextChars, 0, n)
	end := clamp(last+r.contextChars, 0, n)

	available := max(r.maxWidth-2*len(ellipsis), 0)
	if end-start > available {
		half := available / 2
		start = clamp(first-half, 0, n)
		end = clamp(first+half, 0, n)
	}

	end = max(end, start)
	return start, end
}

// highlight writes chars with every in-range occurrence styled as a match.
// Occurrences starting inside a previous one are skipped; one running past the end is cut.
func (r *Renderer) highlight(chars []rune, qlen int, offsets []int, mode Mode) string {
	var sb strings.Builder
	last := 0
	for _, start := range offsets {
		if start < last || start >= len(chars) {
			continue
		}
		end := min(start+qlen, len(chars))
		if start > last {
			sb.WriteString(r.plain(string(chars[last:start]), mode))
		}
		sb.WriteString(r.match(string(chars[start:end]), mode))
		last = end
	}
	if last < len(chars) {
		sb.WriteString(r.plain(string(chars[last:]), mode))
	}
	return sb.String()
}

func (r *Renderer) plain(s string, mode Mode) string {
	if mode == Pure || s == "" {
		return s
	}
	return r.styles.Content.Render(s)
}

func (r *Renderer) match(s string, mode Mode) string {
	if mode == Pure || s == "" {
		return s
	}
	return r.styles.Match.Render(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
