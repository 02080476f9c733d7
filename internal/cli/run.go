package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dew667/rspfind/internal/input"
	"github.com/dew667/rspfind/internal/output"
	"github.com/dew667/rspfind/internal/progress"
	"github.com/dew667/rspfind/internal/scheduler"
	"github.com/dew667/rspfind/internal/walker"
)

// Run executes the search described by cfg, printing the report to stdout and
// warnings and progress to stderr. cfg must already be validated.
func Run(cfg Config, stdout, stderr io.Writer) error {
	logger := log.NewWithOptions(stderr, log.Options{
		Level: cfg.LogLevel,
	})

	var (
		result *scheduler.Result
		root   string
	)
	if cfg.DirMode() {
		fmt.Fprintf(stdout, "Searching in directory %s\n", quoteList(cfg.Dirs))
		res, dir, err := searchDir(cfg, stderr, logger)
		if err != nil {
			return err
		}
		result, root = res, dir
	} else {
		fmt.Fprintf(stdout, "Searching in files %s\n", quoteList(cfg.FilePaths))
		res, err := searchFiles(cfg, logger)
		if err != nil {
			return err
		}
		result = res
	}

	styles, mode := stylesFor(cfg, stdout)
	renderer := output.NewRenderer(output.RendererConfig{MaxWidth: cfg.Width}, styles)

	report := output.NewTextFormatter(renderer, styles, mode).WithRoot(root).Format(nil, result)
	report = append(report, '\n')
	if _, err := stdout.Write(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Stats {
		output.WriteSummary(stdout, result)
	}

	if cfg.OutputDir != "" {
		pure := output.NewTextFormatter(renderer, styles, output.Pure).WithRoot(root)
		path, err := output.WriteReportFile(cfg.OutputDir, result, pure)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Output saved to: %q\n", path)
	}

	logger.Debug("search finished", "files", result.Len(), "lines", result.MatchCount())
	return nil
}

// searchFiles scans the explicit file list sequentially.
func searchFiles(cfg Config, logger *log.Logger) (*scheduler.Result, error) {
	files, err := resolveFiles(cfg.FilePaths, logger)
	if err != nil {
		return nil, err
	}
	sched := scheduler.New(scheduler.Options{
		Query:      cfg.Query,
		IgnoreCase: cfg.IgnoreCase,
		Reader:     input.NewFileReader(0),
		Logger:     logger,
	})
	return sched.ScanSequential(files), nil
}

// searchDir walks the directory and scans the files it finds in parallel. It
// also returns the canonical root the report names files relative to.
func searchDir(cfg Config, stderr io.Writer, logger *log.Logger) (*scheduler.Result, string, error) {
	root, err := resolveDir(cfg.Dirs[0])
	if err != nil {
		return nil, "", err
	}

	files := walker.Collect(root, walker.WalkOptions{
		Gitignore: cfg.Gitignore,
		NoHidden:  cfg.NoHidden,
	}, func(err error) {
		logger.Warn("walk error", "err", err)
	})
	logger.Debug("collected files", "root", root, "count", len(files))

	var reporter progress.Reporter = progress.Nop{}
	if cfg.ShowProgress && len(files) > 0 {
		reporter = progress.NewBar(stderr)
	}

	sched := scheduler.New(scheduler.Options{
		Workers:    cfg.Workers,
		Query:      cfg.Query,
		IgnoreCase: cfg.IgnoreCase,
		Reader:     input.NewFileReader(0),
		Progress:   reporter,
		Logger:     logger,
	})
	result, err := sched.Scan(files)
	if err != nil {
		return nil, "", fmt.Errorf("scan %s: %w", root, err)
	}
	return result, root, nil
}

// stylesFor picks the output styles and render mode for the color setting.
func stylesFor(cfg Config, stdout io.Writer) (output.Styles, output.Mode) {
	switch cfg.Color {
	case ColorAlways:
		return output.NewStyles(output.NewColorRenderer(stdout, true)), output.Decorated
	case ColorNever:
		return output.NoStyles(), output.Pure
	}
	if output.StdoutIsTerminal() {
		return output.NewStyles(output.NewColorRenderer(stdout, false)), output.Decorated
	}
	return output.NoStyles(), output.Pure
}

// quoteList formats paths as ["a", "b"].
func quoteList(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = strconv.Quote(p)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
