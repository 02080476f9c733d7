package cli

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	configPathEnv  = "RSPFIND_CONFIG_PATH"
	configFileName = ".rspfind"
)

// LoadConfigArgs reads default find flags from the config file named by
// RSPFIND_CONFIG_PATH, or ~/.rspfind. A missing file yields nil silently; a file
// that exists but cannot be read is reported to logger and ignored.
func LoadConfigArgs(logger *log.Logger) []string {
	path := os.Getenv(configPathEnv)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Debug("no home directory, skipping config file", "err", err)
			return nil
		}
		path = filepath.Join(home, configFileName)
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("cannot open config file", "path", path, "err", err)
		}
		return nil
	}
	defer f.Close()

	args, err := parseConfigArgs(f)
	if err != nil {
		logger.Warn("cannot read config file", "path", path, "err", err)
		return nil
	}
	logger.Debug("loaded config file", "path", path, "args", args)
	return args
}

// parseConfigArgs reads one flag per line. Empty lines and lines starting with
// # are skipped. A line "--flag value" yields two arguments; "--flag=value" and
// bare flags yield one.
func parseConfigArgs(r io.Reader) ([]string, error) {
	var args []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, " \t"); i > 0 && line[0] == '-' && !strings.Contains(line[:i], "=") {
			args = append(args, line[:i], strings.TrimSpace(line[i:]))
			continue
		}
		args = append(args, line)
	}
	return args, scanner.Err()
}

// withConfigArgs inserts the config file flags right after the find subcommand,
// so single-valued flags given on the command line come later and win.
// --file-path and --dir accumulate rather than override, so config file copies
// of them are dropped whenever the command line already chooses a mode.
func withConfigArgs(args, cfgArgs []string) []string {
	if len(cfgArgs) == 0 || len(args) == 0 || args[0] != "find" {
		return args
	}
	if hasModeFlag(args[1:]) {
		cfgArgs = dropModeFlags(cfgArgs)
	}
	out := make([]string, 0, len(args)+len(cfgArgs))
	out = append(out, args[0])
	out = append(out, cfgArgs...)
	return append(out, args[1:]...)
}

// modeFlag reports whether arg sets --file-path or --dir, and whether the
// value is the following argument.
func modeFlag(arg string) (mode, valueNext bool) {
	switch {
	case arg == "--file-path", arg == "--dir", arg == "-f", arg == "-d":
		return true, true
	case strings.HasPrefix(arg, "--file-path="), strings.HasPrefix(arg, "--dir="):
		return true, false
	case strings.HasPrefix(arg, "-f"), strings.HasPrefix(arg, "-d"):
		return true, false
	}
	return false, false
}

func hasModeFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if mode, _ := modeFlag(arg); mode {
			return true
		}
	}
	return false
}

func dropModeFlags(args []string) []string {
	var kept []string
	for i := 0; i < len(args); i++ {
		mode, valueNext := modeFlag(args[i])
		if !mode {
			kept = append(kept, args[i])
			continue
		}
		if valueNext {
			i++
		}
	}
	return kept
}
