package todo

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/render"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

func (m Model) visibleItems() int {
	visible := m.Height - 12
	if visible < 1 {
		visible = 1
	}
	return visible
}

// UpdateListView handles input for the list view.
func (m Model) UpdateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visibleItems := m.visibleItems()

	key := msg.String()
	kb := m.Config.Keys()

	// Handle quit/back; a picked action is cancelled first
	if config.MatchesAny(key, kb.Global.Quit, kb.Global.QuitAlt) {
		if m.Pick != ActionNone {
			m.Pick = ActionNone
			m.StatusMsg = ""
			return m, nil
		}
		return m, func() tea.Msg { return BackToMenuMsg{} }
	}

	// Handle navigation
	if config.MatchesAny(key, kb.Global.MoveUp, kb.Global.MoveUpAlt) {
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.ListScroll {
				m.ListScroll = m.Cursor
			}
		}
		return m, nil
	}

	if config.MatchesAny(key, kb.Global.MoveDown, kb.Global.MoveDownAlt) {
		if m.Cursor < len(m.List.Todos)-1 {
			m.Cursor++
			if m.Cursor >= m.ListScroll+visibleItems {
				m.ListScroll = m.Cursor - visibleItems + 1
			}
		}
		return m, nil
	}

	// Handle list-specific keybindings
	switch {
	case config.Matches(key, kb.List.Top):
		m.Cursor = 0
		m.ListScroll = 0

	case config.Matches(key, kb.List.Bottom):
		if len(m.List.Todos) > 0 {
			m.Cursor = len(m.List.Todos) - 1
			if m.Cursor >= visibleItems {
				m.ListScroll = m.Cursor - visibleItems + 1
			}
		}

	case config.Matches(key, kb.Global.Select):
		if _, _, ok := m.selected(); !ok {
			return m, nil
		}
		switch m.Pick {
		case ActionDone:
			return m, m.markDone()
		case ActionRemove:
			return m.askRemove(), nil
		default:
			m.CurrentView = DetailView
		}

	case config.Matches(key, kb.List.Add):
		return m.openAdd()

	case config.Matches(key, kb.List.Done):
		return m, m.markDone()

	case config.Matches(key, kb.List.Delete):
		if _, _, ok := m.selected(); ok {
			return m.askRemove(), nil
		}

	case config.Matches(key, kb.List.Clear):
		return m.askClear(), nil

	case config.Matches(key, kb.List.Projects):
		return m, func() tea.Msg { return OpenProjectsMsg{} }
	}

	return m, nil
}

// markDone completes the selected todo.
func (m Model) markDone() tea.Cmd {
	t, pos, ok := m.selected()
	if !ok {
		return nil
	}
	return m.mutate(func(d *todo.Document) (string, error) {
		if err := m.checkTarget(d, t.ID, pos); err != nil {
			return "", err
		}
		done, err := todo.MarkDone(d, m.Project.ID, pos)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Completed %q", done.Task), nil
	})
}

func (m Model) askRemove() Model {
	t, pos, ok := m.selected()
	if !ok {
		return m
	}
	remove := m.mutate(func(d *todo.Document) (string, error) {
		if err := m.checkTarget(d, t.ID, pos); err != nil {
			return "", err
		}
		task, err := todo.RemoveTodo(d, m.Project.ID, pos)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %q", task), nil
	})
	return m.ask(fmt.Sprintf("Are you sure you want to remove %q?", t.Task), "", remove)
}

func (m Model) askClear() Model {
	if m.List.Total == 0 {
		m.StatusMsg = "Your todo list is already empty."
		return m
	}
	projectID := m.Project.ID
	clearAll := m.mutate(func(d *todo.Document) (string, error) {
		if d.Settings.CurrentProject != projectID {
			return "", errStale
		}
		n, err := todo.ClearTodos(d, projectID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Cleared %d todos", n), nil
	})
	prompt := fmt.Sprintf("Are you sure you want to clear ALL %d todos? This cannot be undone!", m.List.Total)
	return m.ask(prompt, "Project: "+m.Project.Name, clearAll)
}

// ViewList renders the list view.
func (m Model) ViewList() string {
	var b strings.Builder

	b.WriteString(styles.Project("  "+m.Project.Name, m.Project.Color))
	if m.List.Total > 0 {
		b.WriteString(styles.Help.Render(fmt.Sprintf(" (%d)", m.List.Total)))
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("─────────────────────────────────────────"))
	b.WriteString("\n")
	if m.StatusMsg != "" {
		b.WriteString(styles.Status.Render("  " + m.StatusMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.Loading {
		b.WriteString(styles.Dim.Render("  Loading..."))
	} else if len(m.List.Todos) == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.viewTodoLines())
		b.WriteString("\n\n  ")
		b.WriteString(render.Stats(m.List.Total, m.List.Completed, m.List.Pending))
	}

	b.WriteString("\n\n")
	kb := m.Config.Keys()
	b.WriteString(styles.Help.Render(fmt.Sprintf("↑/%s ↓/%s navigate • %s/%s top/bottom • %s details",
		config.Display(kb.Global.MoveUp), config.Display(kb.Global.MoveDown),
		config.Display(kb.List.Top), config.Display(kb.List.Bottom), config.Display(kb.Global.Select))))
	b.WriteString("\n")
	b.WriteString(styles.Help.Render(fmt.Sprintf("%s add • %s done • %s remove • %s clear • %s projects • %s back",
		config.Display(kb.List.Add), config.Display(kb.List.Done), config.Display(kb.List.Delete),
		config.Display(kb.List.Clear), config.Display(kb.List.Projects), config.Display(kb.Global.Quit))))

	return b.String()
}

func (m Model) viewEmptyState() string {
	var b strings.Builder
	kb := m.Config.Keys()

	b.WriteString(styles.Box.Render(
		styles.Value.Render("No todos yet!") + "\n" +
			styles.Help.Render("Press ") + styles.Selected.Render(config.Display(kb.List.Add)) +
			styles.Help.Render(" to add your first one"),
	))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTodoLines() string {
	var b strings.Builder

	visibleItems := m.visibleItems()
	if visibleItems > len(m.List.Todos) {
		visibleItems = len(m.List.Todos)
	}

	if m.ListScroll > 0 {
		b.WriteString(styles.Help.Render("  ↑ more above"))
		b.WriteString("\n")
	}

	endIdx := m.ListScroll + visibleItems
	if endIdx > len(m.List.Todos) {
		endIdx = len(m.List.Todos)
	}

	now := time.Now()
	for i := m.ListScroll; i < endIdx; i++ {
		t := m.List.Todos[i]

		if i == m.Cursor {
			b.WriteString(styles.Cursor.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(styles.Dim.Render(fmt.Sprintf("%2d. ", i+1)))
		if t.Completed {
			b.WriteString(styles.Done.Render(styles.IconDone + " "))
		} else {
			b.WriteString(styles.Pending.Render(styles.IconPending + " "))
		}
		if i == m.Cursor && !t.Completed {
			b.WriteString(styles.Selected.Render(t.Task))
		} else {
			b.WriteString(render.Task(t))
		}
		b.WriteString(styles.Dim.Render("  " + render.Ago(t.CreatedAt, now)))

		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(m.List.Todos) {
		b.WriteString("\n")
		b.WriteString(styles.Help.Render("  ↓ more below"))
	}

	return b.String()
}
