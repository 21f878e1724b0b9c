package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/laydown/internal/model"
)

// Panel frames lines in a bordered box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// StandupPanel renders every section with its items, in display order.
func StandupPanel(s model.Standup) string {
	t := Current()
	header := fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render("Standup"),
		t.Success.Render(t.SymOK), len(s.Did),
		t.Pending.Render(t.Bullet), s.Len()-len(s.Did),
	)

	lines := []string{header, ""}
	for i, c := range model.Categories() {
		if i > 0 {
			lines = append(lines, "")
		}
		items := s.Items(c)
		lines = append(lines, t.Accent.Render(fmt.Sprintf("%s (%d)", c.Heading(), len(items))))
		if len(items) == 0 {
			lines = append(lines, t.Muted.Render("  (none)"))
			continue
		}
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("  %s %s", t.Muted.Render(t.Bullet), it))
		}
	}
	if s.IsEmpty() {
		lines = append(lines, "", t.Muted.Render(`Tip: add with "laydown did <item>"`))
	}
	return Panel(lines)
}
