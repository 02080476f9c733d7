package matcher

import (
	"unicode/utf8"

	"github.com/dew667/rspfind/internal/input"
)

// Search consumes src line by line and returns a Record for every line that
// contains the query. Lines without an occurrence produce nothing.
func (l *Locator) Search(src *input.LineSource) []Record {
	var records []Record
	for {
		line, idx, ok := src.Next()
		if !ok {
			return records
		}
		offsets := l.Locate(line)
		if len(offsets) == 0 {
			continue
		}
		records = append(records, Record{
			Query:       l.query,
			FileName:    src.Name(),
			LineNumber:  idx,
			Offsets:     offsets,
			LineText:    line,
			MatchedText: substring(line, offsets[0], l.queryLen),
		})
	}
}

// substring returns n code points of s starting at code point start.
func substring(s string, start, n int) string {
	b := 0
	for i := 0; i < start && b < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}
	e := b
	for i := 0; i < n && e < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[e:])
		e += size
	}
	return s[b:e]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Search is a one-shot form of NewLocator(query, ignoreCase).Search(src).
func Search(src *input.LineSource, query string, ignoreCase bool) []Record {
	return NewLocator(query, ignoreCase).Search(src)
}
