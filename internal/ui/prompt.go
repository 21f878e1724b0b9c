package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled means the user left the prompt without answering.
var ErrPromptCancelled = errors.New("prompt cancelled")

// LinePrompter asks on out and reads one line from in per question.
// It is used when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Prompt(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrPromptCancelled
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TeaPrompter asks through a small Bubble Tea program with an inline text input.
type TeaPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p TeaPrompter) Prompt(question string) (string, error) {
	prog := tea.NewProgram(newConfirmModel(question), tea.WithInput(p.In), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok || m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.input.Value(), nil
}

type confirmModel struct {
	question  string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newConfirmModel(question string) confirmModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "y/n"
	ti.CharLimit = 16
	ti.Focus()
	return confirmModel{question: question, input: ti}
}

func (m confirmModel) Init() tea.Cmd { return textinput.Blink }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	t := Current()
	if m.done || m.cancelled {
		return t.Title.Render(m.question) + " " + m.input.Value() + "\n"
	}
	return t.Title.Render(m.question) + "\n" + m.input.View() + "\n" +
		t.Muted.Render("enter to answer • esc to cancel") + "\n"
}
