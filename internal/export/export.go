// Package export renders the store, or one project, in a chosen format.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ihatemodels/todoterm/internal/todo"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{JSON, YAML, TOML}

// ParseFormat resolves a format name, accepting "yml" as YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or toml)", name)
}

// Document writes the whole document.
func Document(w io.Writer, f Format, doc *todo.Document) error {
	return encode(w, f, doc)
}

// Project writes a single project with its todos.
func Project(w io.Writer, f Format, p *todo.Project) error {
	return encode(w, f, p)
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(v)
	}
	return fmt.Errorf("unknown export format %q", f)
}
