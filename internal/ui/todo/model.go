// Package todo provides the todo list TUI component for the current project.
package todo

import (
	"errors"
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

// View represents the current view within the todo component.
type View int

const (
	ListView View = iota
	DetailView
	AddView
	ConfirmView
)

// Action is a pending operation picked from the main menu. The next
// selection in the list performs it.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionDone
	ActionRemove
	ActionClear
)

// errStale is reported when the store changed underneath the list.
var errStale = errors.New("the list changed on disk, reloaded")

// Model is the Bubble Tea model for the todo list.
type Model struct {
	Store  *store.Store
	Config *config.Config

	CurrentView View
	Project     todo.Project
	List        todo.TodoList
	Cursor      int
	Pick        Action

	Input   textinput.Model
	Confirm confirm.Model
	// pending runs when the confirmation is answered yes.
	pending tea.Cmd

	// Scrolling state
	ListScroll int

	// UI state
	Width     int
	Height    int
	StatusMsg string
	ErrMsg    string
	Loading   bool
}

// Message types
type (
	TodosLoadedMsg struct {
		Project todo.Project
		List    todo.TodoList
	}

	// TodoErrorMsg reports a failed load.
	TodoErrorMsg struct {
		Err error
	}

	// opErrorMsg reports a failed mutation; the list is reloaded after it.
	opErrorMsg struct {
		Err error
	}

	TodoSavedMsg struct {
		Status string
	}

	BackToMenuMsg struct{}

	OpenProjectsMsg struct{}
)

// New creates a new Model.
func New(s *store.Store, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500
	ti.Prompt = "› "

	return Model{
		Store:       s,
		Config:      cfg,
		CurrentView: ListView,
		Input:       ti,
		Loading:     true,
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
	return m.LoadTodos
}

// Start resets the view and arms an action picked from the menu.
func (m Model) Start(a Action) (Model, tea.Cmd) {
	m.CurrentView = ListView
	m.Pick = ActionNone
	m.StatusMsg = ""
	m.ErrMsg = ""

	switch a {
	case ActionAdd:
		return m.openAdd()
	case ActionDone:
		m.Pick = ActionDone
		m.StatusMsg = "Which todo to mark as done?"
	case ActionRemove:
		m.Pick = ActionRemove
		m.StatusMsg = "Which todo to remove?"
	case ActionClear:
		return m.askClear(), m.LoadTodos
	}
	return m, m.LoadTodos
}

// LoadTodos loads the current project's todos from the store.
func (m Model) LoadTodos() tea.Msg {
	doc, err := m.Store.Load()
	if err != nil {
		return TodoErrorMsg{Err: err}
	}
	p, err := doc.Current()
	if err != nil {
		return TodoErrorMsg{Err: err}
	}
	list, err := todo.ListTodos(doc, p.ID)
	if err != nil {
		return TodoErrorMsg{Err: err}
	}
	return TodosLoadedMsg{Project: *p, List: list}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case TodosLoadedMsg:
		m.Project = msg.Project
		m.List = msg.List
		m.Loading = false
		m.clampCursor()
		return m, nil

	case TodoErrorMsg:
		m.ErrMsg = msg.Err.Error()
		m.Loading = false
		return m, nil

	case opErrorMsg:
		m.ErrMsg = msg.Err.Error()
		m.CurrentView = ListView
		return m, m.LoadTodos

	case TodoSavedMsg:
		m.CurrentView = ListView
		m.Pick = ActionNone
		m.ErrMsg = ""
		m.StatusMsg = msg.Status
		return m, m.LoadTodos

	case tea.KeyMsg:
		m.ErrMsg = ""
		return m.handleKeyMsg(msg)
	}

	if m.CurrentView == AddView {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ListView:
		return m.UpdateListView(msg)
	case DetailView:
		return m.UpdateDetailView(msg)
	case AddView:
		return m.UpdateAddView(msg)
	case ConfirmView:
		return m.UpdateConfirmView(msg)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.List.Todos) {
		m.Cursor = len(m.List.Todos) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.ListScroll > m.Cursor {
		m.ListScroll = m.Cursor
	}
	if m.CurrentView == DetailView && len(m.List.Todos) == 0 {
		m.CurrentView = ListView
	}
}

// selected returns the todo under the cursor and its 1-based position.
func (m Model) selected() (todo.Todo, int, bool) {
	if len(m.List.Todos) == 0 || m.Cursor >= len(m.List.Todos) {
		return todo.Todo{}, 0, false
	}
	return m.List.Todos[m.Cursor], m.Cursor + 1, true
}

// mutate runs fn inside a store update and reports the outcome as a message.
func (m Model) mutate(fn func(d *todo.Document) (string, error)) tea.Cmd {
	return func() tea.Msg {
		var status string
		err := m.Store.Update(func(d *todo.Document) error {
			var err error
			status, err = fn(d)
			return err
		})
		if err != nil {
			return opErrorMsg{Err: err}
		}
		return TodoSavedMsg{Status: status}
	}
}

// checkTarget makes sure position still holds the todo the user picked.
func (m Model) checkTarget(d *todo.Document, id string, position int) error {
	if d.Settings.CurrentProject != m.Project.ID {
		return errStale
	}
	p, err := d.Project(m.Project.ID)
	if err != nil {
		return err
	}
	if position < 1 || position > len(p.Todos) || p.Todos[position-1].ID != id {
		return errStale
	}
	return nil
}

// ask switches to the confirmation view; onYes runs when confirmed.
func (m Model) ask(prompt, detail string, onYes tea.Cmd) Model {
	m.Confirm = confirm.New(prompt, detail, m.Config.Keys().Global.Confirm)
	m.pending = onYes
	m.CurrentView = ConfirmView
	return m
}

// UpdateConfirmView handles input for the confirmation view.
func (m Model) UpdateConfirmView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := m.Confirm.Answer(msg)
	if !answered {
		return m, nil
	}
	cmd := m.pending
	m.pending = nil
	m.CurrentView = ListView
	m.Pick = ActionNone
	if !yes {
		m.StatusMsg = "Todo kept safely!"
		return m, nil
	}
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
		content.WriteString(m.ViewList())
	case DetailView:
		content.WriteString(m.ViewDetail())
	case AddView:
		content.WriteString(m.ViewAdd())
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
