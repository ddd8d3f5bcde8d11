package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the sceneswap banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___  ___ ___ _ __   ___  _____      ____ _ _ __  ", "#34d399"},
		{" / __|/ __/ _ \\ '_ \\ / _ \\/ __\\ \\ /\\ / / _` | '_ \\ ", "#2dd4bf"},
		{" \\__ \\ (_|  __/ | | |  __/\\__ \\\\ V  V / (_| | |_) |", "#22d3ee"},
		{" |___/\\___\\___|_| |_|\\___||___/ \\_/\\_/ \\__,_| .__/ ", "#38bdf8"},
		{"                                             |_|    ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

// Warn colours a warning line for terminal output.
func Warn(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("! " + msg).Foreground(p.Color("#fbbf24")).String()
}
