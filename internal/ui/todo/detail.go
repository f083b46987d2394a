package todo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/ui/render"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

// UpdateDetailView handles input for the detail view.
func (m Model) UpdateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.Config.Keys()

	switch {
	case config.MatchesAny(key, kb.Global.Quit, kb.Global.QuitAlt, kb.Global.Select):
		m.CurrentView = ListView

	case config.Matches(key, kb.List.Done):
		return m, m.markDone()

	case config.Matches(key, kb.List.Delete):
		return m.askRemove(), nil
	}

	return m, nil
}

// ViewDetail renders the detail view.
func (m Model) ViewDetail() string {
	t, pos, ok := m.selected()
	if !ok {
		return ""
	}

	var lines []string

	lines = append(lines, styles.Title.Render(fmt.Sprintf("  Todo #%d", pos)))
	lines = append(lines, styles.Help.Render("─────────────────────────────────────────────────────"))
	lines = append(lines, "")

	lines = append(lines, styles.Label.Render("Task:      ")+styles.Value.Render(t.Task))
	lines = append(lines, styles.Label.Render("Status:    ")+render.Status(t))
	lines = append(lines, styles.Label.Render("Project:   ")+styles.Project(m.Project.Name, m.Project.Color))
	lines = append(lines, styles.Label.Render("Priority:  ")+styles.Value.Render(t.Priority))
	lines = append(lines, styles.Label.Render("Created:   ")+styles.Value.Render(t.CreatedAt.Local().Format(render.DateLayout)))
	if t.CompletedAt != nil {
		lines = append(lines, styles.Label.Render("Completed: ")+styles.Value.Render(t.CompletedAt.Local().Format(render.DateLayout)))
	}
	lines = append(lines, styles.Label.Render("ID:        ")+styles.Dim.Render(t.ID))

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	kb := m.Config.Keys()
	b.WriteString(styles.Help.Render(fmt.Sprintf("%s done • %s remove • %s back",
		config.Display(kb.List.Done), config.Display(kb.List.Delete), config.Display(kb.Global.Quit))))

	return b.String()
}
