package scheduler

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dew667/rspfind/internal/input"
	"github.com/dew667/rspfind/internal/matcher"
	"github.com/dew667/rspfind/internal/progress"
)

// Options configures a Scheduler.
type Options struct {
	Workers    int // 0 means runtime.NumCPU()
	Query      string
	IgnoreCase bool
	Reader     input.Reader      // nil means input.NewFileReader(0)
	Progress   progress.Reporter // nil means progress.Nop
	Logger     *log.Logger       // nil discards
}

// Scheduler searches a set of files for one query.
type Scheduler struct {
	workers  int
	locator  *matcher.Locator
	reader   input.Reader
	progress progress.Reporter
	logger   *log.Logger
}

// New creates a Scheduler.
func New(opts Options) *Scheduler {
	s := &Scheduler{
		workers:  opts.Workers,
		locator:  matcher.NewLocator(opts.Query, opts.IgnoreCase),
		reader:   opts.Reader,
		progress: opts.Progress,
		logger:   opts.Logger,
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.reader == nil {
		s.reader = input.NewFileReader(0)
	}
	if s.progress == nil {
		s.progress = progress.Nop{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Scan searches files concurrently. Files that cannot be read or are not UTF-8
// text are skipped, and files without a match get no entry. Progress advances
// once per file whatever the outcome. Scan returns after every file is done.
// Per-file failures are logged and never returned.
func (s *Scheduler) Scan(files []string) (*Result, error) {
	result := NewResult()
	s.progress.Start(len(files))
	defer s.progress.Finish()

	fileCh := make(chan string)
	var g errgroup.Group
	g.SetLimit(s.workers + 1)

	g.Go(func() error {
		defer close(fileCh)
		for _, f := range files {
			fileCh <- f
		}
		return nil
	})

	for range min(s.workers, max(len(files), 1)) {
		g.Go(func() error {
			for path := range fileCh {
				records, ok := s.searchFile(path)
				if ok && len(records) > 0 {
					if !result.Insert(path, records) {
						s.logger.Warn("duplicate file in scan", "path", path)
					}
				}
				s.progress.Advance()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ScanSequential searches files one after another in the given order. Unlike
// Scan, a readable file without matches is recorded with an empty list. A path
// listed twice is read once.
func (s *Scheduler) ScanSequential(files []string) *Result {
	result := NewResult()
	s.progress.Start(len(files))
	defer s.progress.Finish()

	for _, path := range files {
		if result.Has(path) {
			s.logger.Debug("skipping repeated file", "path", path)
			s.progress.Advance()
			continue
		}
		if records, ok := s.searchFile(path); ok {
			result.Insert(path, records)
		}
		s.progress.Advance()
	}
	return result
}

func (s *Scheduler) searchFile(path string) ([]matcher.Record, bool) {
	src, err := input.Load(s.reader, path, path)
	if err != nil {
		s.logger.Debug("skipping file", "path", path, "err", err)
		return nil, false
	}
	return s.locator.Search(src), true
}
