// Package app provides the main application TUI model.
package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/project"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
	todoview "github.com/ihatemodels/todoterm/internal/ui/todo"
	"github.com/ihatemodels/todoterm/internal/watch"
)

const banner = `
 ╺┳╸┏━┓╺┳┓┏━┓╺┳╸┏━╸┏━┓┏┳┓
  ┃ ┃ ┃ ┃┃┃ ┃ ┃ ┣╸ ┣┳┛┃┃┃
  ╹ ┗━┛╺┻┛┗━┛ ╹ ┗━╸╹┗╸╹ ╹`

// View represents which view is currently active.
type View int

const (
	MainMenuView View = iota
	TodosView
	ProjectsView
)

type choice struct {
	label  string
	action todoview.Action
	view   View
	quit   bool
}

var choices = []choice{
	{label: "☰  View todos", view: TodosView},
	{label: "+  Add new todo", view: TodosView, action: todoview.ActionAdd},
	{label: "✔  Mark todo as done", view: TodosView, action: todoview.ActionDone},
	{label: "✖  Remove a todo", view: TodosView, action: todoview.ActionRemove},
	{label: "⌫  Clear all todos", view: TodosView, action: todoview.ActionClear},
	{label: "■  Projects", view: ProjectsView},
	{label: "⏻  Exit", quit: true},
}

// Summary describes the current project on the menu.
type Summary struct {
	Project todo.Project
	Total   int
	Pending int
}

// Message types
type (
	SummaryLoadedMsg struct {
		Summary Summary
	}

	SummaryErrorMsg struct {
		Err error
	}

	// StoreChangedMsg is sent when another process wrote the store file.
	StoreChangedMsg struct {
		Event watch.Event
	}
)

// Model is the main application model.
type Model struct {
	store   *store.Store
	config  *config.Config
	version string
	changes <-chan watch.Event

	cursor  int
	width   int
	height  int
	summary *Summary
	errMsg  string

	currentView  View
	todoModel    todoview.Model
	projectModel project.Model
}

// New creates a new application model. changes may be nil.
func New(s *store.Store, cfg *config.Config, version string, changes <-chan watch.Event) Model {
	return Model{
		store:        s,
		config:       cfg,
		version:      version,
		changes:      changes,
		currentView:  MainMenuView,
		todoModel:    todoview.New(s, cfg),
		projectModel: project.New(s, cfg),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSummary, m.waitForChange())
}

func (m Model) loadSummary() tea.Msg {
	doc, err := m.store.Load()
	if err != nil {
		return SummaryErrorMsg{Err: err}
	}
	p, err := doc.Current()
	if err != nil {
		return SummaryErrorMsg{Err: err}
	}
	total, _, pending := p.Counts()
	return SummaryLoadedMsg{Summary: Summary{Project: *p, Total: total, Pending: pending}}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Event: ev}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.todoModel.SetSize(msg.Width, msg.Height)
		m.projectModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case SummaryLoadedMsg:
		m.summary = &msg.Summary
		m.errMsg = ""
		return m, nil

	case SummaryErrorMsg:
		m.errMsg = msg.Err.Error()
		return m, nil

	case StoreChangedMsg:
		cmds := []tea.Cmd{m.loadSummary, m.waitForChange()}
		switch m.currentView {
		case TodosView:
			cmds = append(cmds, m.todoModel.LoadTodos)
		case ProjectsView:
			cmds = append(cmds, m.projectModel.LoadProjects)
		}
		return m, tea.Batch(cmds...)

	case todoview.BackToMenuMsg, project.BackMsg:
		m.currentView = MainMenuView
		return m, m.loadSummary

	case todoview.OpenProjectsMsg:
		return m.openProjects()

	case project.ProjectSwitchedMsg:
		return m.openTodos(todoview.ActionNone)
	}

	switch m.currentView {
	case TodosView:
		updated, cmd := m.todoModel.Update(msg)
		m.todoModel = updated.(todoview.Model)
		return m, cmd
	case ProjectsView:
		updated, cmd := m.projectModel.Update(msg)
		m.projectModel = updated.(project.Model)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.config.Keys()

	switch {
	case config.MatchesAny(key, kb.Global.Quit, kb.Global.QuitAlt):
		return m, tea.Quit
	case config.MatchesAny(key, kb.Global.MoveUp, kb.Global.MoveUpAlt):
		if m.cursor > 0 {
			m.cursor--
		}
	case config.MatchesAny(key, kb.Global.MoveDown, kb.Global.MoveDownAlt):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case config.MatchesAny(key, kb.Global.Select, " "):
		return m.handleMenuSelection()
	}
	return m, nil
}

func (m Model) handleMenuSelection() (tea.Model, tea.Cmd) {
	c := choices[m.cursor]
	switch {
	case c.quit:
		return m, tea.Quit
	case c.view == ProjectsView:
		return m.openProjects()
	default:
		return m.openTodos(c.action)
	}
}

func (m Model) openTodos(a todoview.Action) (tea.Model, tea.Cmd) {
	m.currentView = TodosView
	m.todoModel.SetSize(m.width, m.height)
	var cmd tea.Cmd
	m.todoModel, cmd = m.todoModel.Start(a)
	return m, cmd
}

func (m Model) openProjects() (tea.Model, tea.Cmd) {
	m.currentView = ProjectsView
	m.projectModel.SetSize(m.width, m.height)
	var cmd tea.Cmd
	m.projectModel, cmd = m.projectModel.Reset()
	return m, cmd
}

// CurrentView returns the active view.
func (m Model) CurrentView() View {
	return m.currentView
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.currentView {
	case TodosView:
		return m.todoModel.View()
	case ProjectsView:
		return m.projectModel.View()
	}

	var content strings.Builder

	content.WriteString(styles.Banner.Render(banner))
	content.WriteString("\n")
	content.WriteString(styles.Version.Render(fmt.Sprintf("v%s", m.version)))
	content.WriteString("\n\n")

	if m.summary != nil {
		content.WriteString(m.renderSummary())
		content.WriteString("\n\n")
	}

	content.WriteString(styles.Title.Render("What would you like to do?"))
	content.WriteString("\n\n")

	for i, c := range choices {
		if m.cursor == i {
			cursor := styles.Cursor.Render("▸ ")
			content.WriteString(styles.Selected.Render(cursor + c.label))
		} else {
			content.WriteString(styles.Item.Render("  " + c.label))
		}
		content.WriteString("\n")
	}

	if m.errMsg != "" {
		content.WriteString("\n")
		content.WriteString(styles.Error.Render("Error: " + m.errMsg))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	kb := m.config.Keys()
	content.WriteString(styles.Help.Render(fmt.Sprintf("↑/%s up • ↓/%s down • %s select • %s quit",
		config.Display(kb.Global.MoveUp), config.Display(kb.Global.MoveDown),
		config.Display(kb.Global.Select), config.Display(kb.Global.QuitAlt))))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content.String())
}

func (m Model) renderSummary() string {
	s := m.summary
	name := styles.Project(s.Project.Name, s.Project.Color)
	var status string
	switch {
	case s.Total == 0:
		status = styles.Dim.Render("no todos yet")
	case s.Pending == 0:
		status = styles.Done.Render("all done")
	default:
		status = styles.Status.Render(fmt.Sprintf("%d of %d pending", s.Pending, s.Total))
	}
	return fmt.Sprintf("  %s  %s", name, status)
}

// Run starts the interactive program on the alternate screen and blocks
// until the user exits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
