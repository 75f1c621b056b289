package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ____                                   _             `, "#fbbf24"},
	{`  / ___|_   _ _ __ ___  _ __   __ _ ___(_) ___  _ __  `, "#f59e0b"},
	{` | |  _| | | | '_ ' _ \| '_ \ / _' / __| |/ _ \| '_ \ `, "#f97316"},
	{` | |_| | |_| | | | | | | | | | (_| \__ \ | (_) | | | |`, "#ef4444"},
	{`  \____|\__, |_| |_| |_|_| |_|\__,_|___/_|\___/|_| |_|`, "#e11d48"},
	{`        |___/                                          `, "#be123c"},
}

// PrintBanner writes the gymnasion banner to w, colored for the profile of the terminal.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Prompt returns the styled input prompt.
func Prompt(w io.Writer) string {
	p := termenv.NewOutput(w).ColorProfile()
	return termenv.String("> ").Foreground(p.Color("#f59e0b")).Bold().String()
}
