package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the surveyflow ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Green to teal, like a field at dawn
	lines := []struct{ text, color string }{
		{"  ___ _  _ _ ____   _____ _   _ ", "#4ade80"},
		{" / __| || | '_\\ V / -_) || |_| |", "#34d399"},
		{" \\__ \\\\_,_|_|  \\_/\\___|\\_, (_)_|", "#2dd4bf"},
		{" |___/    flow          |__/     ", "#22d3ee"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
