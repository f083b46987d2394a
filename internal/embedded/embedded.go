// Package embedded provides files compiled into the binary.
package embedded

import (
	"embed"
	"path"
)

//go:embed schema/*.json
var schemaFS embed.FS

// StoreSchemaName is the name of the JSON Schema for the persisted store.
const StoreSchemaName = "store"

// GetSchema returns the content of an embedded JSON Schema by name.
// Name should be without extension, e.g., "store".
func GetSchema(name string) ([]byte, error) {
	return schemaFS.ReadFile(path.Join("schema", name+".schema.json"))
}
