package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dew667/rspfind/internal/output"
)

// Version is the rspfind release, set at build time with -ldflags.
var Version = "0.1.0"

// Execute runs the command line and exits with status 1 on any error.
// Flags from the config file are applied before the ones on the command line.
func Execute() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	cmd := newRootCmd()
	cmd.SetArgs(withConfigArgs(os.Args[1:], LoadConfigArgs(logger)))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rspfind",
		Short:         "A tool to find content in files",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("please specify a subcommand: find or version")
		},
	}
	cmd.AddCommand(newFindCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rspfind version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rspfind version %s\n", Version)
		},
	}
}

type findFlags struct {
	query      string
	filePaths  []string
	dirs       []string
	ignoreCase bool
	output     string
	width      int
	color      string
	workers    int
	progress   bool
	stats      bool
	gitignore  bool
	noHidden   bool
	logLevel   string
}

func newFindCmd() *cobra.Command {
	var f findFlags

	cmd := &cobra.Command{
		Use:   "find --query Q (--file-path P... | --dir D)",
		Short: "Search files or a directory tree for a literal string",
		Long: `Search explicit files or one directory tree for every line that contains
the query, and print each match with its line number and character positions.

Extra arguments after --file-path or --dir are taken as more paths of the same kind:
  rspfind find -q needle -f a.txt b.txt
  rspfind find -q needle -d ./src -o ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd, args)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.query, "query", "q", "", "literal text to search for")
	fl.StringArrayVarP(&f.filePaths, "file-path", "f", nil, "file to search (can be repeated)")
	fl.StringArrayVarP(&f.dirs, "dir", "d", nil, "directory to search recursively")
	fl.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "match case-insensitively")
	fl.StringVarP(&f.output, "output", "o", "", "existing directory to write output.txt into")
	fl.IntVar(&f.width, "width", 0, "maximum rendered line width (default: terminal width)")
	fl.StringVar(&f.color, "color", "auto", "when to color output: auto, always or never")
	fl.IntVarP(&f.workers, "workers", "j", 0, "parallel workers for directory scans (default: number of CPUs)")
	fl.BoolVar(&f.progress, "progress", false, "show a progress bar for directory scans (default: when stderr is a terminal)")
	fl.BoolVar(&f.stats, "stats", false, "print a per-file summary table")
	fl.BoolVar(&f.gitignore, "gitignore", false, "respect .gitignore files and skip VCS directories")
	fl.BoolVar(&f.noHidden, "no-hidden", false, "skip hidden files and directories")
	fl.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.MarkFlagRequired("query")

	return cmd
}

// config builds a Config from the parsed flags. Positional arguments extend
// whichever of --file-path or --dir was given.
func (f *findFlags) config(cmd *cobra.Command, args []string) (Config, error) {
	color, err := ParseColorMode(f.color)
	if err != nil {
		return Config{}, err
	}
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", f.logLevel)
	}

	cfg := Config{
		Query:      f.query,
		FilePaths:  f.filePaths,
		Dirs:       f.dirs,
		IgnoreCase: f.ignoreCase,
		OutputDir:  f.output,
		Width:      f.width,
		Color:      color,
		Workers:    f.workers,
		Stats:      f.stats,
		Gitignore:  f.gitignore,
		NoHidden:   f.noHidden,
		LogLevel:   level,
	}

	if len(args) > 0 {
		switch {
		case len(cfg.FilePaths) > 0 && len(cfg.Dirs) == 0:
			cfg.FilePaths = append(cfg.FilePaths, args...)
		case len(cfg.Dirs) > 0 && len(cfg.FilePaths) == 0:
			cfg.Dirs = append(cfg.Dirs, args...)
		default:
			return Config{}, fmt.Errorf("unexpected arguments %v", args)
		}
	}

	if cfg.Width == 0 {
		cfg.Width = output.TerminalWidth(os.Stdout.Fd())
	}

	cfg.ShowProgress = f.progress
	if !cmd.Flags().Changed("progress") {
		cfg.ShowProgress = output.IsTerminal(os.Stderr.Fd())
	}
	return cfg, nil
}
