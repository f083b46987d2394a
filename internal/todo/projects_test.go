package todo

import (
	"errors"
	"testing"
	"time"
)

func TestAddProject(t *testing.T) {
	fixedClock(t)
	d := NewDocument()

	p, err := AddProject(d, ProjectSpec{Name: "  Side Project! ", Description: "weekend"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if p.ID != "side-project" {
		t.Errorf("Expected ID 'side-project', got '%s'", p.ID)
	}
	if p.Name != "Side Project!" {
		t.Errorf("Expected trimmed name, got '%s'", p.Name)
	}
	if p.Color != DefaultColor {
		t.Errorf("Expected default color, got '%s'", p.Color)
	}
	if p.Todos == nil {
		t.Error("Expected non-nil todo slice")
	}
	if d.Projects["side-project"] != p {
		t.Error("Project not stored under its ID")
	}

	again, err := AddProject(d, ProjectSpec{Name: "side project"})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != "side-project-1" {
		t.Errorf("Expected 'side-project-1', got '%s'", again.ID)
	}
}

func TestAddProject_InvalidName(t *testing.T) {
	d := NewDocument()
	for _, name := range []string{"", "   ", "!!!", "日本"} {
		if _, err := AddProject(d, ProjectSpec{Name: name}); !errors.Is(err, ErrInvalidName) {
			t.Errorf("AddProject(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if len(d.Projects) != 1 {
		t.Errorf("Expected only inbox, got %d projects", len(d.Projects))
	}
}

func TestRemoveProject_Inbox(t *testing.T) {
	d := docWithTasks(t, "keep me")

	if _, err := RemoveProject(d, InboxID); !errors.Is(err, ErrProtectedProject) {
		t.Fatalf("Expected ErrProtectedProject, got %v", err)
	}
	if _, ok := d.Projects[InboxID]; !ok {
		t.Fatal("Inbox was removed")
	}
	if len(d.Projects[InboxID].Todos) != 1 || d.Settings.CurrentProject != InboxID {
		t.Error("Document changed after protected removal")
	}
}

func TestRemoveProject_ResetsCurrent(t *testing.T) {
	d := NewDocument()
	p, _ := AddProject(d, ProjectSpec{Name: "work"})
	if err := SwitchProject(d, p.ID); err != nil {
		t.Fatal(err)
	}

	removed, err := RemoveProject(d, p.ID)
	if err != nil {
		t.Fatalf("RemoveProject failed: %v", err)
	}
	if removed.ID != "work" {
		t.Errorf("Expected removed project 'work', got '%s'", removed.ID)
	}
	if d.Settings.CurrentProject != InboxID {
		t.Errorf("Expected current project reset to inbox, got '%s'", d.Settings.CurrentProject)
	}

	if _, err := RemoveProject(d, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestRemoveProject_KeepsOtherCurrent(t *testing.T) {
	d := NewDocument()
	a, _ := AddProject(d, ProjectSpec{Name: "a"})
	b, _ := AddProject(d, ProjectSpec{Name: "b"})
	_ = SwitchProject(d, a.ID)

	if _, err := RemoveProject(d, b.ID); err != nil {
		t.Fatal(err)
	}
	if d.Settings.CurrentProject != a.ID {
		t.Errorf("Expected current project '%s', got '%s'", a.ID, d.Settings.CurrentProject)
	}
}

func TestSwitchProject(t *testing.T) {
	d := NewDocument()
	if err := SwitchProject(d, "ghost"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
	if d.Settings.CurrentProject != InboxID {
		t.Error("Failed switch changed the current project")
	}

	p, _ := AddProject(d, ProjectSpec{Name: "ghost"})
	if err := SwitchProject(d, p.ID); err != nil {
		t.Fatal(err)
	}
	if d.Settings.CurrentProject != "ghost" {
		t.Errorf("Expected current 'ghost', got '%s'", d.Settings.CurrentProject)
	}
}

func TestCurrentProjectNeverDangles(t *testing.T) {
	d := NewDocument()
	ops := []func(){
		func() { _, _ = AddProject(d, ProjectSpec{Name: "x"}) },
		func() { _ = SwitchProject(d, "x") },
		func() { _ = SwitchProject(d, "missing") },
		func() { _, _ = RemoveProject(d, "x") },
		func() { _, _ = RemoveProject(d, InboxID) },
		func() { _, _ = AddProject(d, ProjectSpec{Name: "y"}) },
		func() { _ = SwitchProject(d, "y") },
		func() { _, _ = RemoveProject(d, "missing") },
		func() { _, _ = RemoveProject(d, "y") },
	}

	for i, op := range ops {
		op()
		if _, ok := d.Projects[d.Settings.CurrentProject]; !ok {
			t.Fatalf("after op %d current project %q does not exist", i, d.Settings.CurrentProject)
		}
	}
}

func TestListProjects(t *testing.T) {
	base := fixedClock(t)
	d := NewDocument()

	now = func() time.Time { return base.Add(2 * time.Minute) }
	_, _ = AddProject(d, ProjectSpec{Name: "later"})
	now = func() time.Time { return base.Add(time.Minute) }
	_, _ = AddProject(d, ProjectSpec{Name: "earlier"})
	_, _ = AddTodo(d, "earlier", "one")
	_, _ = AddTodo(d, "earlier", "two")
	_, _ = MarkDone(d, "earlier", 1)
	_ = SwitchProject(d, "earlier")

	got := ListProjects(d)
	want := []string{InboxID, "earlier", "later"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d projects, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].Project.ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, got[i].Project.ID)
		}
	}

	earlier := got[1]
	if !earlier.Current {
		t.Error("Expected 'earlier' to be current")
	}
	if earlier.Total != 2 || earlier.Completed != 1 || earlier.Pending != 1 {
		t.Errorf("Expected 2/1/1, got %d/%d/%d", earlier.Total, earlier.Completed, earlier.Pending)
	}
	if got[0].Current || got[2].Current {
		t.Error("Only one project should be current")
	}
}
