package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Skylark ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Sky gradient, dawn to noon.
	lines := []struct {
		text  string
		color string
	}{
		{"  ____  _          _            _    ", "#fb923c"},
		{" / ___|| | ___   _| | __ _ _ __| | __", "#fbbf24"},
		{" \\___ \\| |/ / | | | |/ _` | '__| |/ /", "#a3e635"},
		{"  ___) |   <| |_| | | (_| | |  |   < ", "#38bdf8"},
		{" |____/|_|\\_\\\\__, |_|\\__,_|_|  |_|\\_\\", "#60a5fa"},
		{"             |___/                   ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
