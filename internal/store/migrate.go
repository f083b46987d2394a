package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ihatemodels/todoterm/internal/todo"
)

// Change names one upgrade or repair applied while decoding.
type Change string

const (
	ChangeMigrated       Change = "migrated legacy todo list into inbox"
	ChangeVersion        Change = "set version"
	ChangeProjects       Change = "added missing projects"
	ChangeInbox          Change = "added missing inbox project"
	ChangeProjectID      Change = "fixed project id"
	ChangeTodos          Change = "added missing todo list"
	ChangeSettings       Change = "added missing settings"
	ChangeCurrentProject Change = "reset current project to inbox"
	ChangeShowProjects   Change = "set showProjects"
	ChangePriority       Change = "set default priority"
)

// Changes lists what Decode had to fix. Empty means the document was
// already current.
type Changes []Change

func (c Changes) String() string {
	parts := make([]string, len(c))
	for i, ch := range c {
		parts[i] = string(ch)
	}
	return strings.Join(parts, "; ")
}

// shape is the kind of top-level JSON value in a store file.
type shape int

const (
	shapeUnknown shape = iota
	shapeLegacy
	shapeCurrent
)

func detectShape(data []byte) shape {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return shapeUnknown
	}
	switch trimmed[0] {
	case '[':
		return shapeLegacy
	case '{':
		return shapeCurrent
	}
	return shapeUnknown
}

// currentShape mirrors todo.Document with pointers so missing pieces can
// be told apart from zero values.
type currentShape struct {
	Version  string                   `json:"version"`
	Projects map[string]*todo.Project `json:"projects"`
	Settings *struct {
		CurrentProject *string `json:"currentProject"`
		ShowProjects   *bool   `json:"showProjects"`
	} `json:"settings"`
}

// Decode parses a store file in either the legacy shape (a bare list of
// todos) or the current shape and returns the canonical document. Legacy
// lists become the inbox's todos; missing pieces of a current document are
// filled from the defaults. The returned Changes say what was done.
func Decode(data []byte) (*todo.Document, Changes, error) {
	kind := detectShape(data)
	if kind == shapeUnknown {
		return nil, nil, corrupt(errors.New("expected a JSON object or array"))
	}

	v, err := decodeValue(data)
	if err != nil {
		return nil, nil, corrupt(err)
	}
	violations, err := validate(v, kind)
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		return nil, nil, &Error{Op: "decode", Kind: ErrCorrupt, Violations: violations}
	}

	switch kind {
	case shapeLegacy:
		return decodeLegacy(data)
	default:
		return decodeCurrent(data)
	}
}

func decodeLegacy(data []byte) (*todo.Document, Changes, error) {
	var todos []todo.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, nil, corrupt(err)
	}
	if todos == nil {
		todos = []todo.Todo{}
	}

	changes := Changes{ChangeMigrated}
	if fillPriority(todos) {
		changes = append(changes, ChangePriority)
	}

	doc := todo.NewDocument()
	doc.Projects[todo.InboxID].Todos = todos
	return doc, changes, nil
}

// fillPriority gives todos without a priority the default one and reports
// whether any was changed.
func fillPriority(todos []todo.Todo) bool {
	changed := false
	for i := range todos {
		if todos[i].Priority == "" {
			todos[i].Priority = todo.DefaultPriority
			changed = true
		}
	}
	return changed
}

func decodeCurrent(data []byte) (*todo.Document, Changes, error) {
	var raw currentShape
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, corrupt(err)
	}

	var changes Changes
	doc := &todo.Document{
		Version:  raw.Version,
		Projects: raw.Projects,
		Settings: todo.DefaultSettings(),
	}

	switch major, ok := majorVersion(raw.Version); {
	case !ok || major < 2:
		doc.Version = todo.SchemaVersion
		changes = append(changes, ChangeVersion)
	case major > 2:
		return nil, nil, corrupt(fmt.Errorf("unsupported version %q", raw.Version))
	}

	if doc.Projects == nil {
		doc.Projects = make(map[string]*todo.Project)
		changes = append(changes, ChangeProjects)
	}
	if _, ok := doc.Projects[todo.InboxID]; !ok {
		doc.Projects[todo.InboxID] = todo.NewInbox()
		changes = append(changes, ChangeInbox)
	}

	ids := make([]string, 0, len(doc.Projects))
	for id := range doc.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := doc.Projects[id]
		if p.ID != id {
			p.ID = id
			changes = append(changes, ChangeProjectID)
		}
		if p.Todos == nil {
			p.Todos = []todo.Todo{}
			changes = append(changes, ChangeTodos)
		}
		if fillPriority(p.Todos) {
			changes = append(changes, ChangePriority)
		}
	}

	if raw.Settings == nil {
		changes = append(changes, ChangeSettings)
	} else {
		if raw.Settings.CurrentProject != nil {
			doc.Settings.CurrentProject = *raw.Settings.CurrentProject
		} else {
			changes = append(changes, ChangeCurrentProject)
		}
		if raw.Settings.ShowProjects != nil {
			doc.Settings.ShowProjects = *raw.Settings.ShowProjects
		} else {
			changes = append(changes, ChangeShowProjects)
		}
	}
	if _, ok := doc.Projects[doc.Settings.CurrentProject]; !ok {
		doc.Settings.CurrentProject = todo.InboxID
		changes = append(changes, ChangeCurrentProject)
	}

	return doc, changes, nil
}

// majorVersion parses the leading number of a "2.0.0" style tag.
func majorVersion(v string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Encode renders the document the way it is stored on disk: 2-space
// indentation and a trailing newline.
func Encode(doc *todo.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func corrupt(err error) *Error {
	return &Error{Op: "decode", Kind: ErrCorrupt, Err: err}
}
