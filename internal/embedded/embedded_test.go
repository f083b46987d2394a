package embedded

import (
	"encoding/json"
	"testing"
)

func TestGetSchema(t *testing.T) {
	data, err := GetSchema(StoreSchemaName)
	if err != nil {
		t.Fatalf("GetSchema failed: %v", err)
	}

	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("store schema is not valid JSON: %v", err)
	}
	if _, ok := v["oneOf"]; !ok {
		t.Error("store schema should describe both store shapes")
	}

	if _, err := GetSchema("missing"); err == nil {
		t.Error("Expected error for unknown schema")
	}
}
