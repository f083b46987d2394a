package todo

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
	return ts
}

func docWithTasks(t *testing.T, tasks ...string) *Document {
	t.Helper()
	d := NewDocument()
	for _, task := range tasks {
		if _, err := AddTodo(d, InboxID, task); err != nil {
			t.Fatalf("AddTodo(%q) failed: %v", task, err)
		}
	}
	return d
}

func TestAddTodo_EmptyStore(t *testing.T) {
	ts := fixedClock(t)
	d := NewDocument()

	created, err := AddTodo(d, InboxID, "buy milk")
	if err != nil {
		t.Fatalf("AddTodo failed: %v", err)
	}

	list, err := ListTodos(d, InboxID)
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if len(list.Todos) != 1 {
		t.Fatalf("Expected 1 todo, got %d", len(list.Todos))
	}
	got := list.Todos[0]
	if got.Task != "buy milk" {
		t.Errorf("Expected task 'buy milk', got '%s'", got.Task)
	}
	if got.Completed {
		t.Error("New todo should not be completed")
	}
	if got.Priority != DefaultPriority {
		t.Errorf("Expected priority %q, got %q", DefaultPriority, got.Priority)
	}
	if !got.CreatedAt.Equal(ts) {
		t.Errorf("Expected createdAt %v, got %v", ts, got.CreatedAt)
	}
	if got.CompletedAt != nil {
		t.Error("New todo should not have completedAt")
	}
	if got.ID == "" || got.ID != created.ID {
		t.Errorf("Expected stored ID %q to match returned ID %q", got.ID, created.ID)
	}
}

func TestAddTodo_DefaultsToCurrentProject(t *testing.T) {
	d := NewDocument()
	p, err := AddProject(d, ProjectSpec{Name: "Work"})
	if err != nil {
		t.Fatal(err)
	}
	if err := SwitchProject(d, p.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := AddTodo(d, "", "write report"); err != nil {
		t.Fatalf("AddTodo failed: %v", err)
	}
	if len(d.Projects["work"].Todos) != 1 {
		t.Errorf("Expected todo in current project, got %d", len(d.Projects["work"].Todos))
	}
	if len(d.Projects[InboxID].Todos) != 0 {
		t.Errorf("Expected inbox untouched, got %d todos", len(d.Projects[InboxID].Todos))
	}
}

func TestAddTodo_Errors(t *testing.T) {
	d := NewDocument()

	if _, err := AddTodo(d, "missing", "x"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
	if _, err := AddTodo(d, InboxID, "   "); !errors.Is(err, ErrEmptyTask) {
		t.Errorf("Expected ErrEmptyTask, got %v", err)
	}
	if len(d.Projects[InboxID].Todos) != 0 {
		t.Error("Failed adds should not mutate the document")
	}
}

func TestListTodos_Counts(t *testing.T) {
	d := docWithTasks(t, "a", "b", "c")
	if _, err := MarkDone(d, InboxID, 2); err != nil {
		t.Fatal(err)
	}

	list, err := ListTodos(d, "")
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 3 || list.Completed != 1 || list.Pending != 2 {
		t.Errorf("Expected 3/1/2, got %d/%d/%d", list.Total, list.Completed, list.Pending)
	}
	if list.ProjectID != InboxID {
		t.Errorf("Expected project %q, got %q", InboxID, list.ProjectID)
	}

	// The returned slice must not alias the document.
	list.Todos[0].Task = "changed"
	if d.Projects[InboxID].Todos[0].Task != "a" {
		t.Error("ListTodos should return a copy")
	}
}

func TestMarkDone(t *testing.T) {
	ts := fixedClock(t)
	d := docWithTasks(t, "pending")

	done, err := MarkDone(d, InboxID, 1)
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if !done.Completed {
		t.Error("Expected todo to be completed")
	}
	got := d.Projects[InboxID].Todos[0]
	if !got.Completed || got.CompletedAt == nil {
		t.Fatal("Expected stored todo to be completed with completedAt")
	}
	if !got.CompletedAt.Equal(ts) {
		t.Errorf("Expected completedAt %v, got %v", ts, *got.CompletedAt)
	}
}

func TestMarkDone_AlreadyCompletedKeepsStamp(t *testing.T) {
	first := fixedClock(t)
	d := docWithTasks(t, "once")
	if _, err := MarkDone(d, InboxID, 1); err != nil {
		t.Fatal(err)
	}

	now = func() time.Time { return first.Add(time.Hour) }
	if _, err := MarkDone(d, InboxID, 1); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("Expected ErrAlreadyCompleted, got %v", err)
	}
	if got := d.Projects[InboxID].Todos[0].CompletedAt; !got.Equal(first) {
		t.Errorf("completedAt was re-stamped: %v", *got)
	}
}

func TestPositionValidation(t *testing.T) {
	tests := []struct {
		name     string
		position int
	}{
		{"zero", 0},
		{"negative", -1},
		{"past end", 3},
		{"far past end", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := docWithTasks(t, "a", "b")

			if _, err := MarkDone(d, InboxID, tt.position); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("MarkDone(%d): expected ErrIndexOutOfRange, got %v", tt.position, err)
			}
			if _, err := RemoveTodo(d, InboxID, tt.position); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("RemoveTodo(%d): expected ErrIndexOutOfRange, got %v", tt.position, err)
			}
			if len(d.Projects[InboxID].Todos) != 2 {
				t.Error("Out of range calls should not mutate the document")
			}

			var pe *PositionError
			_, err := MarkDone(d, InboxID, tt.position)
			if !errors.As(err, &pe) || pe.Len != 2 {
				t.Errorf("Expected *PositionError with Len 2, got %v", err)
			}
		})
	}
}

func TestRemoveTodo_ShiftsPositions(t *testing.T) {
	tasks := []string{"one", "two", "three", "four"}

	for k := 1; k <= len(tasks); k++ {
		d := docWithTasks(t, tasks...)
		before, _ := ListTodos(d, InboxID)

		removed, err := RemoveTodo(d, InboxID, k)
		if err != nil {
			t.Fatalf("RemoveTodo(%d) failed: %v", k, err)
		}
		if removed != before.Todos[k-1].Task {
			t.Errorf("RemoveTodo(%d) removed %q, want %q", k, removed, before.Todos[k-1].Task)
		}

		after, _ := ListTodos(d, InboxID)
		if len(after.Todos) != len(before.Todos)-1 {
			t.Fatalf("Expected %d todos, got %d", len(before.Todos)-1, len(after.Todos))
		}
		for i := range after.Todos {
			want := before.Todos[i]
			if i >= k-1 {
				want = before.Todos[i+1]
			}
			if after.Todos[i].ID != want.ID {
				t.Errorf("k=%d: position %d holds %q, want %q", k, i+1, after.Todos[i].Task, want.Task)
			}
		}
	}
}

func TestClearTodos(t *testing.T) {
	d := docWithTasks(t, "a", "b")

	n, err := ClearTodos(d, InboxID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2 cleared, got %d", n)
	}
	if d.Projects[InboxID].Todos == nil || len(d.Projects[InboxID].Todos) != 0 {
		t.Error("Expected an empty, non-nil todo slice")
	}

	if _, err := ClearTodos(d, "nope"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}
