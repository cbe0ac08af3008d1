package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Wayfarer banner.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Sunrise palette, top to bottom.
	lines := []struct{ text, color string }{
		{` __      __              __                         `, "#fbbf24"},
		{`/  \    /  \_____ ___.__/ _|____ _______   ____ _______`, "#f59e0b"},
		{`\   \/\/   /\__  <   |  \   __\__  \_  __ \_/ __ \_  __ \`, "#f97316"},
		{` \        /  / __ \\___  ||  |  / __ \|  | \/\  ___/|  | \/`, "#ef4444"},
		{`  \__/\  /  (____  / ____||__| (____  /__|    \___  >__|`, "#e11d48"},
		{`       \/        \/\/                \/            \/`, "#be123c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  trip builder "+version).Faint())
	fmt.Fprintln(w)
}

// Success prints a green status line.
func Success(w io.Writer, format string, args ...any) {
	status(w, "#22c55e", format, args...)
}

// Warning prints an amber status line.
func Warning(w io.Writer, format string, args ...any) {
	status(w, "#f59e0b", format, args...)
}

// Failure prints a red status line.
func Failure(w io.Writer, format string, args ...any) {
	status(w, "#ef4444", format, args...)
}

func status(w io.Writer, color, format string, args ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w, out.String(">>> "+fmt.Sprintf(format, args...)).Foreground(out.Color(color)))
}
