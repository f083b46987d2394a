// Package project provides the project list TUI component: switch, add and
// remove projects.
package project

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/confirm"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

// View represents the current view within the project component.
type View int

const (
	ListView View = iota
	AddView
	ConfirmView
)

// Model is the Bubble Tea model for the project list.
type Model struct {
	Store  *store.Store
	Config *config.Config

	CurrentView View
	Projects    []todo.ProjectSummary
	Cursor      int

	Input   textinput.Model
	Confirm confirm.Model
	pending tea.Cmd
	// focusID moves the cursor to this project after the next load.
	focusID string

	Width     int
	Height    int
	StatusMsg string
	ErrMsg    string
}

// Message types
type (
	ProjectsLoadedMsg struct {
		Projects []todo.ProjectSummary
	}

	ProjectErrorMsg struct {
		Err error
	}

	opErrorMsg struct {
		Err error
	}

	ProjectSavedMsg struct {
		Status  string
		FocusID string
	}

	// ProjectSwitchedMsg is sent after the current project changed.
	ProjectSwitchedMsg struct {
		ID string
	}

	BackMsg struct{}
)

// New creates a new Model.
func New(s *store.Store, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Project name"
	ti.CharLimit = 100
	ti.Prompt = "› "

	return Model{
		Store:       s,
		Config:      cfg,
		CurrentView: ListView,
		Input:       ti,
	}
}

// SetSize sets the width and height of the model.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.Input.Width = width - 10
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.LoadProjects
}

// Reset returns to the list and reloads it.
func (m Model) Reset() (Model, tea.Cmd) {
	m.CurrentView = ListView
	m.StatusMsg = ""
	m.ErrMsg = ""
	m.focusID = ""
	return m, m.LoadProjects
}

// LoadProjects loads the project summaries from the store.
func (m Model) LoadProjects() tea.Msg {
	doc, err := m.Store.Load()
	if err != nil {
		return ProjectErrorMsg{Err: err}
	}
	return ProjectsLoadedMsg{Projects: todo.ListProjects(doc)}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ProjectsLoadedMsg:
		m.Projects = msg.Projects
		m.placeCursor()
		return m, nil

	case ProjectErrorMsg:
		m.ErrMsg = msg.Err.Error()
		return m, nil

	case opErrorMsg:
		m.ErrMsg = msg.Err.Error()
		m.CurrentView = ListView
		return m, m.LoadProjects

	case ProjectSavedMsg:
		m.CurrentView = ListView
		m.StatusMsg = msg.Status
		m.focusID = msg.FocusID
		return m, m.LoadProjects

	case tea.KeyMsg:
		m.ErrMsg = ""
		switch m.CurrentView {
		case ListView:
			return m.updateList(msg)
		case AddView:
			return m.updateAdd(msg)
		case ConfirmView:
			return m.updateConfirm(msg)
		}
		return m, nil
	}

	if m.CurrentView == AddView {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) placeCursor() {
	if m.focusID != "" {
		for i, s := range m.Projects {
			if s.Project.ID == m.focusID {
				m.Cursor = i
			}
		}
		m.focusID = ""
	}
	if m.Cursor >= len(m.Projects) {
		m.Cursor = len(m.Projects) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selected() (*todo.Project, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Projects) {
		return nil, false
	}
	return m.Projects[m.Cursor].Project, true
}

func (m Model) mutate(fn func(d *todo.Document) (ProjectSavedMsg, error)) tea.Cmd {
	return func() tea.Msg {
		var saved ProjectSavedMsg
		err := m.Store.Update(func(d *todo.Document) error {
			var err error
			saved, err = fn(d)
			return err
		})
		if err != nil {
			return opErrorMsg{Err: err}
		}
		return saved
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.Config.Keys()

	switch {
	case config.MatchesAny(key, kb.Global.Quit, kb.Global.QuitAlt):
		return m, func() tea.Msg { return BackMsg{} }

	case config.MatchesAny(key, kb.Global.MoveUp, kb.Global.MoveUpAlt):
		if m.Cursor > 0 {
			m.Cursor--
		}

	case config.MatchesAny(key, kb.Global.MoveDown, kb.Global.MoveDownAlt):
		if m.Cursor < len(m.Projects)-1 {
			m.Cursor++
		}

	case config.Matches(key, kb.Projects.Switch):
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		id := p.ID
		return m, func() tea.Msg {
			err := m.Store.Update(func(d *todo.Document) error {
				return todo.SwitchProject(d, id)
			})
			if err != nil {
				return opErrorMsg{Err: err}
			}
			return ProjectSwitchedMsg{ID: id}
		}

	case config.Matches(key, kb.Projects.Add):
		m.CurrentView = AddView
		m.Input.Reset()
		return m, m.Input.Focus()

	case config.Matches(key, kb.Projects.Delete):
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		if p.ID == todo.InboxID {
			m.ErrMsg = fmt.Sprintf("%s cannot be removed", p.Name)
			return m, nil
		}
		return m.askRemove(p), nil
	}

	return m, nil
}

func (m Model) askRemove(p *todo.Project) Model {
	id, name := p.ID, p.Name
	remove := m.mutate(func(d *todo.Document) (ProjectSavedMsg, error) {
		removed, err := todo.RemoveProject(d, id)
		if err != nil {
			return ProjectSavedMsg{}, err
		}
		return ProjectSavedMsg{
			Status: fmt.Sprintf("Removed project %q and its %d todos", removed.Name, len(removed.Todos)),
		}, nil
	})

	total, _, _ := p.Counts()
	m.Confirm = confirm.New(
		fmt.Sprintf("Are you sure you want to remove project %q?", name),
		fmt.Sprintf("Its %d todos will be deleted.", total),
		m.Config.Keys().Global.Confirm,
	)
	m.pending = remove
	m.CurrentView = ConfirmView
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := m.Confirm.Answer(msg)
	if !answered {
		return m, nil
	}
	cmd := m.pending
	m.pending = nil
	m.CurrentView = ListView
	if !yes {
		m.StatusMsg = "Project kept."
		return m, nil
	}
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.Config.Keys()

	if config.Matches(key, kb.Form.Cancel) {
		m.Input.Blur()
		m.CurrentView = ListView
		return m, nil
	}

	if config.Matches(key, kb.Form.Submit) {
		name := strings.TrimSpace(m.Input.Value())
		if name == "" {
			m.ErrMsg = "Name is required"
			return m, nil
		}
		m.Input.Blur()
		return m, m.mutate(func(d *todo.Document) (ProjectSavedMsg, error) {
			p, err := todo.AddProject(d, todo.ProjectSpec{Name: name})
			if err != nil {
				return ProjectSavedMsg{}, err
			}
			return ProjectSavedMsg{
				Status:  fmt.Sprintf("Created project %q (%s)", p.Name, p.ID),
				FocusID: p.ID,
			}, nil
		})
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch m.CurrentView {
	case ListView:
		content.WriteString(m.viewList())
	case AddView:
		content.WriteString(styles.Title.Render("  New project"))
		content.WriteString("\n\n  ")
		content.WriteString(m.Input.View())
		content.WriteString("\n\n")
		kb := m.Config.Keys()
		content.WriteString(styles.Help.Render(fmt.Sprintf("%s create • %s cancel",
			config.Display(kb.Form.Submit), config.Display(kb.Form.Cancel))))
	case ConfirmView:
		content.WriteString(m.Confirm.View())
	}

	if m.ErrMsg != "" {
		content.WriteString("\n\n")
		content.WriteString(styles.Error.Render("Error: " + m.ErrMsg))
	}

	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		Padding(1, 2).
		Render(content.String())
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("  Projects"))
	b.WriteString(styles.Help.Render(fmt.Sprintf(" (%d)", len(m.Projects))))
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("─────────────────────────────────────────"))
	b.WriteString("\n")
	if m.StatusMsg != "" {
		b.WriteString(styles.Status.Render("  " + m.StatusMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, s := range m.Projects {
		if i == m.Cursor {
			b.WriteString(styles.Cursor.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		if s.Current {
			b.WriteString(styles.Selected.Render("● "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(styles.Project(s.Project.Name, s.Project.Color))
		b.WriteString(styles.Dim.Render(fmt.Sprintf("  %s  %d todos, %d done", s.Project.ID, s.Total, s.Completed)))
		if s.Project.Description != "" {
			b.WriteString(styles.Help.Render("  " + s.Project.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	kb := m.Config.Keys()
	b.WriteString(styles.Help.Render(fmt.Sprintf("↑/%s ↓/%s navigate • %s switch • %s add • %s remove • %s back",
		config.Display(kb.Global.MoveUp), config.Display(kb.Global.MoveDown),
		config.Display(kb.Projects.Switch), config.Display(kb.Projects.Add),
		config.Display(kb.Projects.Delete), config.Display(kb.Global.Quit))))

	return b.String()
}
