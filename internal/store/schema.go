package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ihatemodels/todoterm/internal/embedded"
)

const schemaURL = "https://todoterm.local/store.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := embedded.GetSchema(embedded.StoreSchemaName)
	if err != nil {
		return nil, fmt.Errorf("read store schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add store schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// schemaBranch is the keyword location of the oneOf alternative that
// describes each store shape.
var schemaBranch = map[shape]string{
	shapeLegacy:  "/oneOf/0",
	shapeCurrent: "/oneOf/1",
}

// validate checks a decoded JSON value against the store schema and returns
// every leaf violation of the alternative for kind.
func validate(v any, kind shape) ([]SchemaViolation, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	err = schema.Validate(v)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var out []SchemaViolation
	collectViolations(&out, ve, schemaBranch[kind])
	if len(out) == 0 {
		collectViolations(&out, ve, "")
	}
	return out, nil
}

// collectViolations appends the leaf errors of err. A non-empty branch
// skips leaves reported by other oneOf alternatives.
func collectViolations(out *[]SchemaViolation, err *jsonschema.ValidationError, branch string) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		if branch != "" && !inBranch(err.KeywordLocation, branch) {
			return
		}
		*out = append(*out, SchemaViolation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}

	for _, cause := range err.Causes {
		collectViolations(out, cause, branch)
	}
}

func inBranch(keywordLocation, branch string) bool {
	return keywordLocation == branch || strings.HasPrefix(keywordLocation, branch+"/")
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}

// decodeValue parses data into a generic value for schema validation.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}
