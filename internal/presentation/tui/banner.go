package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the mold banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Warm gradient, clay to amber
	lines := []struct{ text, color string }{
		{"                 _     _ ", "#b45309"},
		{"  _ __ ___   ___ | | __| |", "#c2410c"},
		{" | '_ ` _ \\ / _ \\| |/ _` |", "#d97706"},
		{" | | | | | | (_) | | (_| |", "#f59e0b"},
		{" |_| |_| |_|\\___/|_|\\__,_|", "#fbbf24"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
