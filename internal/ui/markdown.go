package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders md for the terminal. Rendering failures fall back to the
// raw markdown, which is still readable.
func Markdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	style := "dark"
	if colorless || currentName == "mono" {
		style = "notty"
	}
	// Avoid WithAutoStyle(): it queries the terminal background and can block.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
