package output

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
)

// Styles holds the lipgloss styles for decorated output.
type Styles struct {
	Filename  lipgloss.Style
	LineNum   lipgloss.Style
	Position  lipgloss.Style
	Separator lipgloss.Style
	Content   lipgloss.Style
	Match     lipgloss.Style
}

// NewStyles creates the default color styles bound to renderer r.
// Tab conversion is disabled so decorated text keeps the same characters as pure text.
func NewStyles(r *lipgloss.Renderer) Styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		Filename:  base.Foreground(lipgloss.Color("3")),                                  // yellow
		LineNum:   base.Foreground(lipgloss.Color("2")),                                  // green
		Position:  base.Foreground(lipgloss.Color("2")),                                  // green
		Separator: base.Foreground(lipgloss.Color("4")),                                  // blue
		Content:   base.Foreground(lipgloss.Color("3")),                                  // yellow
		Match:     base.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")), // on red
	}
}

// NoStyles returns styles that render text unchanged.
func NoStyles() Styles {
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		Filename:  base,
		LineNum:   base,
		Position:  base,
		Separator: base,
		Content:   base,
		Match:     base,
	}
}

// NewColorRenderer returns a lipgloss renderer for w. When force is true the ANSI
// profile is used regardless of what w is connected to.
func NewColorRenderer(w io.Writer, force bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.ANSI)
	}
	return r
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}

// TerminalWidth returns the display width to render lines into: COLUMNS when it
// holds a positive integer, else the window size of fd, else DefaultMaxWidth.
func TerminalWidth(fd uintptr) int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 {
		return int(ws.Col)
	}
	return DefaultMaxWidth
}
