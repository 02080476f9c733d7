package matcher

// Record is the result of locating a query on one line.
type Record struct {
	Query       string
	FileName    string
	LineNumber  int   // 0-based
	Offsets     []int // code point offsets into LineText, strictly increasing
	LineText    string
	MatchedText string // first occurrence as it appears in LineText
}

// Spans returns the 1-based inclusive [start, end] code point range of each occurrence,
// the form printed in reports.
func (r Record) Spans() [][2]int {
	n := runeLen(r.Query)
	spans := make([][2]int, len(r.Offsets))
	for i, off := range r.Offsets {
		spans[i] = [2]int{off + 1, off + n}
	}
	return spans
}
