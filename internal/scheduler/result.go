package scheduler

import (
	"sort"
	"sync"

	"github.com/dew667/rspfind/internal/matcher"
)

// Result maps a canonical file path to the records found in that file.
// Insert is safe for concurrent use; each key can be inserted once.
type Result struct {
	mu      sync.RWMutex
	entries map[string][]matcher.Record
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{entries: make(map[string][]matcher.Record)}
}

// Insert stores records for path. It returns false and leaves the existing
// entry untouched if path is already present.
func (r *Result) Insert(path string, records []matcher.Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[path]; ok {
		return false
	}
	if records == nil {
		records = []matcher.Record{}
	}
	r.entries[path] = records
	return true
}

// Has reports whether path has an entry, including an empty one.
func (r *Result) Has(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[path]
	return ok
}

// Records returns the records stored for path.
func (r *Result) Records(path string) []matcher.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[path]
}

// Files returns every key in lexical order.
func (r *Result) Files() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	files := make([]string, 0, len(r.entries))
	for f := range r.entries {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of entries.
func (r *Result) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// MatchCount returns the total number of matching lines across all files.
func (r *Result) MatchCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, records := range r.entries {
		n += len(records)
	}
	return n
}
