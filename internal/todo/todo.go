// Package todo holds the todoterm data model and the operations that
// mutate it: todos scoped to projects, the always-present inbox project and
// the current project selection.
//
// Functions in this package work on an in-memory *Document and never touch
// the disk; persisting the result is the caller's job (see package store).
package todo

import (
	"time"
)

const (
	// SchemaVersion is the version tag written to every persisted document.
	SchemaVersion = "2.0.0"

	// InboxID is the ID of the default project. It can never be removed.
	InboxID = "inbox"

	// DefaultPriority is assigned to every new todo.
	DefaultPriority = "medium"

	// DefaultColor is used for projects created without a color.
	DefaultColor = "cyan"
)

// now is swapped in tests.
var now = func() time.Time {
	return time.Now().UTC()
}

// Todo is a single task within a project.
type Todo struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Task        string     `json:"task" yaml:"task" toml:"task"`
	Completed   bool       `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	Priority    string     `json:"priority" yaml:"priority" toml:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
}

// Project is a named, ordered container of todos.
type Project struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Color       string    `json:"color" yaml:"color" toml:"color"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	Todos       []Todo    `json:"todos" yaml:"todos" toml:"todos"`
}

// Settings holds user selections persisted with the document.
type Settings struct {
	CurrentProject string `json:"currentProject" yaml:"currentProject" toml:"currentProject"`
	ShowProjects   bool   `json:"showProjects" yaml:"showProjects" toml:"showProjects"`
}

// Document is the root persisted store: every project plus settings.
type Document struct {
	Version  string              `json:"version" yaml:"version" toml:"version"`
	Projects map[string]*Project `json:"projects" yaml:"projects" toml:"projects"`
	Settings Settings            `json:"settings" yaml:"settings" toml:"settings"`
}

// NewTodo creates a pending Todo with a generated ID and the default priority.
func NewTodo(task string) Todo {
	return Todo{
		ID:        NewTodoID(),
		Task:      task,
		CreatedAt: now(),
		Priority:  DefaultPriority,
	}
}

// NewInbox returns an empty inbox project.
func NewInbox() *Project {
	return &Project{
		ID:          InboxID,
		Name:        "Inbox",
		Description: "Default project",
		Color:       DefaultColor,
		CreatedAt:   now(),
		Todos:       []Todo{},
	}
}

// DefaultSettings returns the settings of a freshly created document.
func DefaultSettings() Settings {
	return Settings{
		CurrentProject: InboxID,
		ShowProjects:   true,
	}
}

// NewDocument returns the default document: a single empty inbox that is
// also the current project.
func NewDocument() *Document {
	return &Document{
		Version:  SchemaVersion,
		Projects: map[string]*Project{InboxID: NewInbox()},
		Settings: DefaultSettings(),
	}
}

// Project returns the project with the given ID, or ErrProjectNotFound.
// An empty id resolves to the current project.
func (d *Document) Project(id string) (*Project, error) {
	if id == "" {
		id = d.Settings.CurrentProject
	}
	p, ok := d.Projects[id]
	if !ok || p == nil {
		return nil, &ProjectError{ID: id, Err: ErrProjectNotFound}
	}
	return p, nil
}

// Current returns the current project.
func (d *Document) Current() (*Project, error) {
	return d.Project("")
}

// Counts returns the total, completed and pending number of todos.
func (p *Project) Counts() (total, completed, pending int) {
	for _, t := range p.Todos {
		if t.Completed {
			completed++
		}
	}
	total = len(p.Todos)
	return total, completed, total - completed
}
