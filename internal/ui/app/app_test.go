package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/project"
	todoview "github.com/ihatemodels/todoterm/internal/ui/todo"
	"github.com/ihatemodels/todoterm/internal/watch"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, changes <-chan watch.Event) (Model, *store.Store) {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), store.FileName))
	err := s.Update(func(d *todo.Document) error {
		if _, err := todo.AddTodo(d, "", "water plants"); err != nil {
			return err
		}
		_, err := todo.AddProject(d, todo.ProjectSpec{Name: "Work"})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	m := New(s, &config.Config{Keybindings: config.DefaultKeybindings()}, "1.0.0", changes)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	next, _ = m.Update(m.loadSummary())
	return next.(Model), s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestMenu_ShowsSummary(t *testing.T) {
	m, _ := newTestApp(t, nil)

	view := m.View()
	for _, want := range []string{"What would you like to do?", "View todos", "Inbox", "1 of 1 pending", "v1.0.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in menu:\n%s", want, view)
		}
	}
}

func TestMenu_OpensTodosWithAction(t *testing.T) {
	m, _ := newTestApp(t, nil)

	// Third entry: mark todo as done.
	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("j"))
	m, cmd := update(t, m, key("enter"))

	if m.CurrentView() != TodosView {
		t.Fatalf("Expected todo view, got %v", m.CurrentView())
	}
	if m.todoModel.Pick != todoview.ActionDone {
		t.Errorf("Expected picked done action, got %v", m.todoModel.Pick)
	}

	m, _ = update(t, m, cmd())
	if m.todoModel.List.Total != 1 {
		t.Errorf("Expected todo view loaded, got %d todos", m.todoModel.List.Total)
	}

	m, _ = update(t, m, todoview.BackToMenuMsg{})
	if m.CurrentView() != MainMenuView {
		t.Errorf("Expected menu after back, got %v", m.CurrentView())
	}
}

func TestMenu_ProjectSwitchOpensTodos(t *testing.T) {
	m, s := newTestApp(t, nil)

	m, _ = update(t, m, todoview.OpenProjectsMsg{})
	if m.CurrentView() != ProjectsView {
		t.Fatalf("Expected project view, got %v", m.CurrentView())
	}

	if err := s.Update(func(d *todo.Document) error { return todo.SwitchProject(d, "work") }); err != nil {
		t.Fatal(err)
	}
	m, cmd := update(t, m, project.ProjectSwitchedMsg{ID: "work"})
	if m.CurrentView() != TodosView {
		t.Fatalf("Expected todo view after switch, got %v", m.CurrentView())
	}
	m, _ = update(t, m, cmd())
	if m.todoModel.Project.ID != "work" {
		t.Errorf("Expected todo view on work, got %q", m.todoModel.Project.ID)
	}
}

func TestMenu_Quit(t *testing.T) {
	m, _ := newTestApp(t, nil)

	if _, cmd := update(t, m, key("q")); !isQuit(cmd) {
		t.Error("q should quit from the menu")
	}
	if _, cmd := update(t, m, key("ctrl+c")); !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}

	// The last entry exits.
	for range choices {
		m, _ = update(t, m, key("j"))
	}
	if _, cmd := update(t, m, key("enter")); !isQuit(cmd) {
		t.Error("Exit entry should quit")
	}
}

func TestStoreChange_Reloads(t *testing.T) {
	changes := make(chan watch.Event, 1)
	m, s := newTestApp(t, changes)

	wait := m.waitForChange()
	if wait == nil {
		t.Fatal("Expected a wait command when changes are watched")
	}

	if err := s.Update(func(d *todo.Document) error {
		_, err := todo.AddTodo(d, "", "from elsewhere")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	changes <- watch.Event{Path: s.Path()}

	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("wait command did not return")
	}
	if _, ok := msg.(StoreChangedMsg); !ok {
		t.Fatalf("Expected StoreChangedMsg, got %T", msg)
	}

	_, cmd := update(t, m, msg)
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("Expected a batch of reloads, got %T", cmd())
	}
	// The first command reloads the summary; the second waits again and
	// must not be run here.
	m, _ = update(t, m, batch[0]())
	if m.summary == nil || m.summary.Total != 2 {
		t.Errorf("Expected refreshed summary with 2 todos, got %+v", m.summary)
	}
}

func TestWaitForChange_NilChannel(t *testing.T) {
	m, _ := newTestApp(t, nil)
	if m.waitForChange() != nil {
		t.Error("Expected no wait command without a watcher")
	}
}
