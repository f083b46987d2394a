// Package confirm provides a y/N question, either embedded in another
// Bubble Tea view or run as its own small program.
package confirm

import (
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

// ErrAborted is returned by Ask when the user interrupts with ctrl+c.
var ErrAborted = errors.New("aborted")

// Model asks a single yes/no question. The default answer is no.
type Model struct {
	Prompt string
	Detail string
	YesKey string

	answered  bool
	confirmed bool
	aborted   bool
}

// New creates a question. yesKey is the binding that answers yes; "y" when empty.
func New(prompt, detail, yesKey string) Model {
	if strings.TrimSpace(yesKey) == "" {
		yesKey = "y"
	}
	return Model{Prompt: prompt, Detail: detail, YesKey: yesKey}
}

// Answer interprets a key press. answered is false for keys that are not
// an answer and should be ignored.
func (m Model) Answer(msg tea.KeyMsg) (answered, yes bool) {
	key := msg.String()
	switch {
	case config.Matches(key, m.YesKey) || strings.EqualFold(key, config.Display(m.YesKey)):
		return true, true
	case key == "n", key == "N", key == "esc", key == "enter", key == "q", key == "ctrl+c":
		return true, false
	}
	return false, false
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Used when the question runs on its own.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	answered, yes := m.Answer(key)
	if !answered {
		return m, nil
	}
	m.answered = true
	m.confirmed = yes
	m.aborted = key.String() == "ctrl+c"
	return m, tea.Quit
}

// Confirmed reports whether the question was answered yes.
func (m Model) Confirmed() bool {
	return m.answered && m.confirmed
}

// View implements tea.Model.
func (m Model) View() string {
	if m.answered {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Confirm.Render(m.Prompt))
	if m.Detail != "" {
		b.WriteString("\n")
		b.WriteString(styles.Value.Render("  " + m.Detail))
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render(config.Display(m.YesKey) + " confirm • n cancel"))
	b.WriteString("\n")
	return b.String()
}

// Ask runs the question as a program reading keys from in and drawing to out.
func Ask(in io.Reader, out io.Writer, m Model) (bool, error) {
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, err
	}
	res, ok := final.(Model)
	if !ok {
		return false, nil
	}
	if res.aborted {
		return false, ErrAborted
	}
	return res.Confirmed(), nil
}
