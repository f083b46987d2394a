package todo

import (
	"strings"
)

// TodoList is a read-only view of one project's todos with derived counts.
type TodoList struct {
	ProjectID string
	Todos     []Todo
	Total     int
	Completed int
	Pending   int
}

// AddTodo appends a new pending todo to the project. An empty projectID
// targets the current project.
func AddTodo(d *Document, projectID, task string) (Todo, error) {
	p, err := d.Project(projectID)
	if err != nil {
		return Todo{}, err
	}
	task = strings.TrimSpace(task)
	if task == "" {
		return Todo{}, ErrEmptyTask
	}

	t := NewTodo(task)
	p.Todos = append(p.Todos, t)
	return t, nil
}

// ListTodos returns the project's todos in position order.
func ListTodos(d *Document, projectID string) (TodoList, error) {
	p, err := d.Project(projectID)
	if err != nil {
		return TodoList{}, err
	}

	total, completed, pending := p.Counts()
	todos := make([]Todo, len(p.Todos))
	copy(todos, p.Todos)
	return TodoList{
		ProjectID: p.ID,
		Todos:     todos,
		Total:     total,
		Completed: completed,
		Pending:   pending,
	}, nil
}

// MarkDone completes the todo at the 1-based position and stamps
// CompletedAt. Completing an already completed todo fails with
// ErrAlreadyCompleted and leaves CompletedAt untouched.
func MarkDone(d *Document, projectID string, position int) (Todo, error) {
	p, idx, err := locate(d, projectID, position)
	if err != nil {
		return Todo{}, err
	}

	t := &p.Todos[idx]
	if t.Completed {
		return *t, ErrAlreadyCompleted
	}
	ts := now()
	t.Completed = true
	t.CompletedAt = &ts
	return *t, nil
}

// RemoveTodo deletes the todo at the 1-based position and returns its task.
// Later todos move up by one position.
func RemoveTodo(d *Document, projectID string, position int) (string, error) {
	p, idx, err := locate(d, projectID, position)
	if err != nil {
		return "", err
	}

	task := p.Todos[idx].Task
	p.Todos = append(p.Todos[:idx], p.Todos[idx+1:]...)
	return task, nil
}

// ClearTodos empties the project and returns how many todos were removed.
func ClearTodos(d *Document, projectID string) (int, error) {
	p, err := d.Project(projectID)
	if err != nil {
		return 0, err
	}

	n := len(p.Todos)
	p.Todos = []Todo{}
	return n, nil
}

// locate resolves a 1-based position to a slice index.
func locate(d *Document, projectID string, position int) (*Project, int, error) {
	p, err := d.Project(projectID)
	if err != nil {
		return nil, 0, err
	}
	if position < 1 || position > len(p.Todos) {
		return nil, 0, &PositionError{Position: position, Len: len(p.Todos)}
	}
	return p, position - 1, nil
}
