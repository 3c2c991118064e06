package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the carousel banner to w. Colours follow the terminal
// profile, so piped output stays plain.
func PrintBanner(w io.Writer, version string) {
	o := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"   ___ __ _ _ __ ___  _   _ ___  ___| |", "#818cf8"},
		{"  / __/ _` | '__/ _ \\| | | / __|/ _ \\ |", "#a78bfa"},
		{" | (_| (_| | | | (_) | |_| \\__ \\  __/ |", "#c084fc"},
		{"  \\___\\__,_|_|  \\___/ \\__,_|___/\\___|_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w, o.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
