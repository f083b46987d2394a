package todo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

func (m Model) openAdd() (Model, tea.Cmd) {
	m.CurrentView = AddView
	m.Input.Reset()
	return m, m.Input.Focus()
}

// UpdateAddView handles input for the add view.
func (m Model) UpdateAddView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.Config.Keys()

	if config.Matches(key, kb.Form.Cancel) {
		m.Input.Blur()
		m.CurrentView = ListView
		return m, nil
	}

	if config.Matches(key, kb.Form.Submit) {
		return m.saveAdd()
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) saveAdd() (tea.Model, tea.Cmd) {
	task := strings.TrimSpace(m.Input.Value())
	if task == "" {
		m.ErrMsg = "Task cannot be empty"
		return m, nil
	}
	m.Input.Blur()

	projectID := m.Project.ID
	return m, m.mutate(func(d *todo.Document) (string, error) {
		t, err := todo.AddTodo(d, projectID, task)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %q", t.Task), nil
	})
}

// ViewAdd renders the add view.
func (m Model) ViewAdd() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("  Add todo"))
	b.WriteString(styles.Dim.Render("  to "))
	b.WriteString(styles.Project(m.Project.Name, m.Project.Color))
	b.WriteString("\n\n  ")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")

	kb := m.Config.Keys()
	b.WriteString(styles.Help.Render(fmt.Sprintf("%s save • %s cancel",
		config.Display(kb.Form.Submit), config.Display(kb.Form.Cancel))))
	return b.String()
}
