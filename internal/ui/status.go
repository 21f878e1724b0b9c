package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetColorProfile picks the Lip Gloss color profile for console output.
// NO_COLOR and the --no-color flag both force plain text.
func SetColorProfile(disable bool) {
	profile := termenv.EnvColorProfile()
	if disable || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		profile = termenv.Ascii
	}
	colorless = profile == termenv.Ascii
	lipgloss.SetColorProfile(profile)
}

var colorless bool

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Success.Render(Current().SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render(Current().SymFail+" "+msg))
}

func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render(msg))
}
