package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Locator finds literal occurrences of one query. It is immutable and safe for
// concurrent use by several scanning workers.
type Locator struct {
	query      string
	needle     string // query, folded when ignoreCase
	queryLen   int    // query length in code points
	ignoreCase bool
}

// NewLocator prepares a Locator for query.
func NewLocator(query string, ignoreCase bool) *Locator {
	needle := query
	if ignoreCase {
		needle = fold(query)
	}
	return &Locator{
		query:      query,
		needle:     needle,
		queryLen:   utf8.RuneCountInString(query),
		ignoreCase: ignoreCase,
	}
}

// Locate returns the code point offsets of every non-overlapping occurrence of the
// query in line, left to right. After a match at o the search resumes at o+len(query).
// It returns nil for an empty query or when nothing matches.
func (l *Locator) Locate(line string) []int {
	if l.needle == "" {
		return nil
	}

	hay := line
	if l.ignoreCase {
		hay = fold(line)
	}

	var offsets []int
	bytePos, runePos := 0, 0
	for {
		i := strings.Index(hay[bytePos:], l.needle)
		if i < 0 {
			return offsets
		}
		runePos += utf8.RuneCountInString(hay[bytePos : bytePos+i])
		offsets = append(offsets, runePos)
		bytePos += i + len(l.needle)
		runePos += l.queryLen
	}
}

// Locate is a one-shot form of NewLocator(query, ignoreCase).Locate(line).
func Locate(line, query string, ignoreCase bool) []int {
	return NewLocator(query, ignoreCase).Locate(line)
}

// fold lower-cases s one rune at a time. Simple per-rune mapping never changes
// the number of code points, so offsets found in the folded copy index the original.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}
