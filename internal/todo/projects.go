package todo

import (
	"sort"
	"strings"
)

// ProjectSpec describes a project to create.
type ProjectSpec struct {
	Name        string
	Description string
	Color       string
}

// ProjectSummary is one row of ListProjects.
type ProjectSummary struct {
	Project   *Project
	Total     int
	Completed int
	Pending   int
	Current   bool
}

// AddProject creates an empty project with an ID derived from spec.Name.
func AddProject(d *Document, spec ProjectSpec) (*Project, error) {
	name := strings.TrimSpace(spec.Name)
	id := NewProjectID(name, d.Projects)
	if id == "" {
		return nil, &ProjectError{ID: spec.Name, Err: ErrInvalidName}
	}

	color := strings.TrimSpace(spec.Color)
	if color == "" {
		color = DefaultColor
	}

	p := &Project{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(spec.Description),
		Color:       color,
		CreatedAt:   now(),
		Todos:       []Todo{},
	}
	if d.Projects == nil {
		d.Projects = make(map[string]*Project)
	}
	d.Projects[id] = p
	return p, nil
}

// RemoveProject deletes a project and its todos. The inbox cannot be
// removed. If the removed project was current, the inbox becomes current.
func RemoveProject(d *Document, id string) (*Project, error) {
	if id == InboxID {
		return nil, &ProjectError{ID: id, Err: ErrProtectedProject}
	}
	p, ok := d.Projects[id]
	if !ok || p == nil {
		return nil, &ProjectError{ID: id, Err: ErrProjectNotFound}
	}

	delete(d.Projects, id)
	if d.Settings.CurrentProject == id {
		d.Settings.CurrentProject = InboxID
	}
	return p, nil
}

// SwitchProject makes id the current project.
func SwitchProject(d *Document, id string) error {
	if p, ok := d.Projects[id]; !ok || p == nil {
		return &ProjectError{ID: id, Err: ErrProjectNotFound}
	}
	d.Settings.CurrentProject = id
	return nil
}

// ListProjects returns every project with its counts. The inbox comes
// first, the rest are ordered by creation time and then ID.
func ListProjects(d *Document) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(d.Projects))
	for id, p := range d.Projects {
		if p == nil {
			continue
		}
		total, completed, pending := p.Counts()
		out = append(out, ProjectSummary{
			Project:   p,
			Total:     total,
			Completed: completed,
			Pending:   pending,
			Current:   id == d.Settings.CurrentProject,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Project, out[j].Project
		if (a.ID == InboxID) != (b.ID == InboxID) {
			return a.ID == InboxID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}
