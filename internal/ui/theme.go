package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	Bullet, SymOK, SymFail                        string
}

var (
	current     = classic()
	currentName = "classic"
)

func classic() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Border:  lipgloss.NormalBorder(), BorderColor: lipgloss.Color("8"),
		Bullet: "•", SymOK: "✔", SymFail: "✖",
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	currentName = strings.ToLower(strings.TrimSpace(name))
	switch currentName {
	case "neon":
		current = Theme{
			Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true), // bright magenta
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Border:  lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			Bullet: "◆", SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Border: lipgloss.ASCIIBorder(), BorderColor: lipgloss.NoColor{},
			Bullet: "-", SymOK: "ok:", SymFail: "error:",
		}
	default:
		currentName = "classic"
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
