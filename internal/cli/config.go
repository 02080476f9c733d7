package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// ParseColorMode converts a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for one find invocation.
type Config struct {
	Query        string
	FilePaths    []string
	Dirs         []string
	IgnoreCase   bool
	OutputDir    string
	Width        int // render width; 0 means detect from the terminal
	Color        ColorMode
	Workers      int
	ShowProgress bool
	Stats        bool
	Gitignore    bool
	NoHidden     bool
	LogLevel     log.Level
}

// DirMode reports whether the search is over a directory tree.
func (c *Config) DirMode() bool {
	return len(c.Dirs) > 0
}

// Validate checks that the config is usable before any scanning starts.
func (c *Config) Validate() error {
	if c.Query == "" {
		return fmt.Errorf("query must not be empty")
	}
	switch {
	case len(c.FilePaths) > 0 && len(c.Dirs) > 0:
		return fmt.Errorf("can only specify one of --file-path or --dir, not both")
	case len(c.FilePaths) == 0 && len(c.Dirs) == 0:
		return fmt.Errorf("must specify either --file-path or --dir")
	case len(c.Dirs) > 1:
		return fmt.Errorf("only one directory path can be specified")
	}
	if c.Width < 0 {
		return fmt.Errorf("invalid width: %d", c.Width)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if err != nil {
			return fmt.Errorf("output directory does not exist: %s", c.OutputDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("output path is not a directory: %s", c.OutputDir)
		}
	}
	return nil
}
