package todo

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/todo"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive runs cmd and feeds the component's own messages back into the
// model until nothing is left. Other messages are returned.
func drive(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case TodosLoadedMsg, TodoErrorMsg, opErrorMsg, TodoSavedMsg:
			next, nextCmd := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nextCmd)
		case BackToMenuMsg, OpenProjectsMsg:
			out = append(out, msg)
		}
	}
	return m, out
}

// press sends a key and drives the resulting commands.
func press(t *testing.T, m Model, keys ...string) (Model, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		var msgs []tea.Msg
		m, msgs = drive(t, next.(Model), cmd)
		out = append(out, msgs...)
	}
	return m, out
}

func newTestModel(t *testing.T, tasks ...string) (Model, *store.Store) {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), store.FileName))
	err := s.Update(func(d *todo.Document) error {
		for _, task := range tasks {
			if _, err := todo.AddTodo(d, "", task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	m := New(s, &config.Config{Keybindings: config.DefaultKeybindings()})
	m.SetSize(100, 40)
	m, _ = drive(t, m, m.Init())
	if m.ErrMsg != "" {
		t.Fatalf("load failed: %s", m.ErrMsg)
	}
	return m, s
}

func storedTodos(t *testing.T, s *store.Store) []todo.Todo {
	t.Helper()
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	list, err := todo.ListTodos(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	return list.Todos
}

func TestModel_AddTodo(t *testing.T) {
	m, s := newTestModel(t)
	if !strings.Contains(m.View(), "No todos yet!") {
		t.Errorf("Expected empty state:\n%s", m.View())
	}

	m, _ = press(t, m, "a")
	if m.CurrentView != AddView {
		t.Fatalf("Expected add view, got %v", m.CurrentView)
	}
	m, _ = press(t, m, "buy milk", "enter")

	if m.CurrentView != ListView {
		t.Errorf("Expected list view after save, got %v", m.CurrentView)
	}
	todos := storedTodos(t, s)
	if len(todos) != 1 || todos[0].Task != "buy milk" {
		t.Fatalf("Expected stored todo, got %+v", todos)
	}
	if m.List.Total != 1 {
		t.Errorf("Expected reloaded list with 1 todo, got %d", m.List.Total)
	}
	if !strings.Contains(m.StatusMsg, "buy milk") {
		t.Errorf("Expected status about the new todo, got %q", m.StatusMsg)
	}
}

func TestModel_AddRejectsBlank(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = press(t, m, "a", "   ", "enter")
	if m.ErrMsg == "" {
		t.Error("Expected an error for a blank task")
	}
	if m.CurrentView != AddView {
		t.Error("blank task should keep the input open")
	}
	if n := len(storedTodos(t, s)); n != 0 {
		t.Errorf("Expected no stored todos, got %d", n)
	}

	m, _ = press(t, m, "esc")
	if m.CurrentView != ListView {
		t.Error("cancel should return to the list")
	}
}

func TestModel_MarkDone(t *testing.T) {
	m, s := newTestModel(t, "one", "two")

	m, _ = press(t, m, "j", "x")

	todos := storedTodos(t, s)
	if todos[0].Completed || !todos[1].Completed {
		t.Errorf("Expected only the second todo completed, got %+v", todos)
	}
	if m.List.Completed != 1 {
		t.Errorf("Expected 1 completed in view, got %d", m.List.Completed)
	}

	// Completing again reports the error and changes nothing.
	m, _ = press(t, m, "x")
	if !strings.Contains(m.ErrMsg, todo.ErrAlreadyCompleted.Error()) {
		t.Errorf("Expected already-completed error, got %q", m.ErrMsg)
	}
}

func TestModel_RemoveAsksFirst(t *testing.T) {
	m, s := newTestModel(t, "keep me", "drop me")

	m, _ = press(t, m, "j", "d")
	if m.CurrentView != ConfirmView {
		t.Fatalf("Expected confirmation, got view %v", m.CurrentView)
	}
	if !strings.Contains(m.View(), "drop me") {
		t.Errorf("confirmation should name the todo:\n%s", m.View())
	}

	m, _ = press(t, m, "n")
	if n := len(storedTodos(t, s)); n != 2 {
		t.Fatalf("declined removal removed a todo, %d left", n)
	}

	m, _ = press(t, m, "d", "y")
	todos := storedTodos(t, s)
	if len(todos) != 1 || todos[0].Task != "keep me" {
		t.Errorf("Expected only 'keep me' left, got %+v", todos)
	}
	if m.Cursor != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", m.Cursor)
	}
}

func TestModel_StaleSelection(t *testing.T) {
	m, s := newTestModel(t, "first", "second")

	// Another process removes the first todo; "second" moves to position 1.
	err := s.Update(func(d *todo.Document) error {
		_, err := todo.RemoveTodo(d, "", 1)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	m, _ = press(t, m, "x")
	if m.ErrMsg != errStale.Error() {
		t.Errorf("Expected stale error, got %q", m.ErrMsg)
	}
	todos := storedTodos(t, s)
	if len(todos) != 1 || todos[0].Completed {
		t.Errorf("stale selection should change nothing, got %+v", todos)
	}
	if m.List.Total != 1 {
		t.Errorf("Expected list reloaded after stale error, got %d todos", m.List.Total)
	}
}

func TestModel_Clear(t *testing.T) {
	m, s := newTestModel(t, "a", "b", "c")

	m, _ = press(t, m, "C")
	if m.CurrentView != ConfirmView || !strings.Contains(m.Confirm.Prompt, "3 todos") {
		t.Fatalf("Expected clear confirmation, got view %v prompt %q", m.CurrentView, m.Confirm.Prompt)
	}
	m, _ = press(t, m, "y")

	if n := len(storedTodos(t, s)); n != 0 {
		t.Errorf("Expected empty project, got %d todos", n)
	}

	m, _ = press(t, m, "C")
	if m.CurrentView != ListView || !strings.Contains(m.StatusMsg, "already empty") {
		t.Errorf("clearing an empty list should only report it, got view %v status %q", m.CurrentView, m.StatusMsg)
	}
}

func TestModel_PickedAction(t *testing.T) {
	m, s := newTestModel(t, "one", "two")

	m, cmd := m.Start(ActionDone)
	m, _ = drive(t, m, cmd)
	if m.Pick != ActionDone {
		t.Fatal("Expected picked action")
	}
	m, _ = press(t, m, "j", "enter")

	if todos := storedTodos(t, s); !todos[1].Completed {
		t.Errorf("Expected second todo completed, got %+v", todos)
	}
	if m.Pick != ActionNone {
		t.Error("picked action should reset after use")
	}

	// With no picked action, enter opens the details.
	m, _ = press(t, m, "enter")
	if m.CurrentView != DetailView || !strings.Contains(m.View(), "Todo #2") {
		t.Errorf("Expected detail view of #2, got view %v", m.CurrentView)
	}
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", "c")

	m, _ = press(t, m, "G")
	if m.Cursor != 2 {
		t.Errorf("Expected cursor at bottom, got %d", m.Cursor)
	}
	m, _ = press(t, m, "k", "g")
	if m.Cursor != 0 {
		t.Errorf("Expected cursor at top, got %d", m.Cursor)
	}

	m, out := press(t, m, "p")
	if len(out) != 1 {
		t.Fatalf("Expected OpenProjectsMsg, got %v", out)
	}
	if _, ok := out[0].(OpenProjectsMsg); !ok {
		t.Errorf("Expected OpenProjectsMsg, got %T", out[0])
	}

	_, out = press(t, m, "esc")
	if len(out) != 1 {
		t.Fatalf("Expected BackToMenuMsg, got %v", out)
	}
	if _, ok := out[0].(BackToMenuMsg); !ok {
		t.Errorf("Expected BackToMenuMsg, got %T", out[0])
	}
}

func TestModel_LoadError(t *testing.T) {
	dir := t.TempDir()
	m := New(store.New(dir), &config.Config{Keybindings: config.DefaultKeybindings()})
	m.SetSize(80, 24)

	msg := m.LoadTodos()
	e, ok := msg.(TodoErrorMsg)
	if !ok {
		t.Fatalf("Expected TodoErrorMsg, got %T", msg)
	}
	if !errors.Is(e.Err, store.ErrUnreadable) {
		t.Errorf("Expected ErrUnreadable, got %v", e.Err)
	}
}
