package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category names one of the four standup lists.
type Category string

const (
	Did     Category = "did"
	Doing   Category = "doing"
	Blocker Category = "blocker"
	Sidebar Category = "sidebar"
)

var ErrUnknownCategory = errors.New("unknown category")

// Every accepted command name maps onto one canonical tag.
var aliases = map[string]Category{
	"di":      Did,
	"did":     Did,
	"do":      Doing,
	"doing":   Doing,
	"bl":      Blocker,
	"blocker": Blocker,
	"sb":      Sidebar,
	"sidebar": Sidebar,
}

// Categories returns the lists in display order.
func Categories() []Category {
	return []Category{Did, Doing, Blocker, Sidebar}
}

// ParseCategory resolves a short or long alias to its canonical category.
func ParseCategory(alias string) (Category, error) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, alias)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case Did, Doing, Blocker, Sidebar:
		return true
	}
	return false
}

// Heading is the section title used in plain-text renderings.
func (c Category) Heading() string {
	switch c {
	case Blocker:
		return "BLOCKERS"
	case Sidebar:
		return "SIDEBARS"
	}
	return strings.ToUpper(string(c))
}

// HistoryEntry records one append so it can be undone.
type HistoryEntry struct {
	Category Category `yaml:"category"`
	Item     string   `yaml:"item"`
}

// Standup is the persisted record. Field order is the on-disk order.
type Standup struct {
	Did      []string       `yaml:"did"`
	Doing    []string       `yaml:"doing"`
	Blockers []string       `yaml:"blockers"`
	Sidebars []string       `yaml:"sidebars"`
	History  []HistoryEntry `yaml:"history"`
}

// New returns an empty standup with every list allocated.
func New() Standup {
	return Standup{
		Did:      []string{},
		Doing:    []string{},
		Blockers: []string{},
		Sidebars: []string{},
		History:  []HistoryEntry{},
	}
}

// Normalize replaces nil lists with empty ones.
func (s *Standup) Normalize() {
	for _, c := range Categories() {
		if l := s.list(c); *l == nil {
			*l = []string{}
		}
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
}

func (s *Standup) list(c Category) *[]string {
	switch c {
	case Did:
		return &s.Did
	case Doing:
		return &s.Doing
	case Blocker:
		return &s.Blockers
	case Sidebar:
		return &s.Sidebars
	}
	return nil
}

// Items returns the list for c. Unknown categories yield nil.
func (s Standup) Items(c Category) []string {
	if l := s.list(c); l != nil {
		return *l
	}
	return nil
}

// Add appends item to the list for c and records it in the history.
func (s *Standup) Add(c Category, item string) error {
	l := s.list(c)
	if l == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	*l = append(*l, item)
	s.History = append(s.History, HistoryEntry{Category: c, Item: item})
	return nil
}

// Undo reverts the most recent Add. It reports false when there is nothing to undo.
//
// The last occurrence of the item is removed. If a manual edit already deleted it,
// only the history entry is dropped.
func (s *Standup) Undo() (HistoryEntry, bool) {
	n := len(s.History)
	if n == 0 {
		return HistoryEntry{}, false
	}
	last := s.History[n-1]
	s.History = s.History[:n-1]

	if l := s.list(last.Category); l != nil {
		items := *l
		for i := len(items) - 1; i >= 0; i-- {
			if items[i] == last.Item {
				*l = append(items[:i], items[i+1:]...)
				break
			}
		}
	}
	return last, true
}

// Len counts items across all four lists.
func (s Standup) Len() int {
	n := 0
	for _, c := range Categories() {
		n += len(s.Items(c))
	}
	return n
}

func (s Standup) IsEmpty() bool { return s.Len() == 0 }

// String renders the plain-text form used for archives and non-terminal output.
func (s Standup) String() string {
	var b strings.Builder
	for i, c := range Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.Heading() + ":\n")
		for _, it := range s.Items(c) {
			b.WriteString("- " + it + "\n")
		}
	}
	return b.String()
}

// Markdown renders the standup as a markdown document.
func (s Standup) Markdown() string {
	var b strings.Builder
	b.WriteString("# Standup\n")
	for _, c := range Categories() {
		b.WriteString("\n## " + c.Heading() + "\n\n")
		items := s.Items(c)
		if len(items) == 0 {
			b.WriteString("_nothing yet_\n")
			continue
		}
		for _, it := range items {
			b.WriteString("- " + it + "\n")
		}
	}
	return b.String()
}
