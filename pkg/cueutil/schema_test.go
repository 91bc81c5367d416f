// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/oschwald/travis-build/pkg/cueutil"
)

const testSchema = `
#Settings: {
	name?:    string
	retries?: int & >=0
	tags?: [...string]
	...
}
`

func compile(t *testing.T) *cueutil.Schema {
	t.Helper()
	schema, err := cueutil.CompileSchema(testSchema, "#Settings")
	if err != nil {
		t.Fatalf("CompileSchema() error = %v", err)
	}
	return schema
}

func TestCompileSchema_MissingDefinition(t *testing.T) {
	t.Parallel()

	if _, err := cueutil.CompileSchema(testSchema, "#Missing"); err == nil {
		t.Error("CompileSchema() with unknown definition should fail")
	}
	if _, err := cueutil.CompileSchema("#A: {", "#A"); err == nil {
		t.Error("CompileSchema() with broken source should fail")
	}
}

func TestSchema_ValidateBytes(t *testing.T) {
	t.Parallel()

	schema := compile(t)
	if got := schema.Name(); got != "#Settings" {
		t.Errorf("Name() = %q, want %q", got, "#Settings")
	}

	v, err := schema.ValidateBytes([]byte(`name: "x"
retries: 2
`), cueutil.WithFilename("config.cue"))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	m, err := cueutil.DecodeMap(v, "config.cue")
	if err != nil {
		t.Fatalf("DecodeMap() error = %v", err)
	}
	if m["name"] != "x" {
		t.Errorf("decoded name = %v, want x", m["name"])
	}

	_, err = schema.ValidateBytes([]byte(`retries: "many"`), cueutil.WithFilename("config.cue"))
	if !errors.Is(err, cueutil.ErrInvalidDocument) {
		t.Fatalf("ValidateBytes() error = %v, want ErrInvalidDocument", err)
	}
	if !strings.Contains(err.Error(), "config.cue") || !strings.Contains(err.Error(), "retries") {
		t.Errorf("error should name file and field, got: %v", err)
	}

	_, err = schema.ValidateBytes([]byte(`name: "x"`), cueutil.WithMaxFileSize(3))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("ValidateBytes() over size limit error = %v", err)
	}
}

func TestSchema_ValidateValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     map[string]any
		wantErr bool
	}{
		{name: "empty", doc: map[string]any{}},
		{name: "known fields", doc: map[string]any{"name": "n", "tags": []any{"a", "b"}}},
		{name: "unknown fields allowed", doc: map[string]any{"node_js": []any{6, 8}}},
		{name: "wrong type", doc: map[string]any{"name": 3}, wantErr: true},
		{name: "constraint", doc: map[string]any{"retries": -1}, wantErr: true},
		{name: "list element type", doc: map[string]any{"tags": []any{"a", true}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := compile(t).ValidateValue(tt.doc, cueutil.WithFilename(".travis.yml"))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%v) error = %v, wantErr %v", tt.doc, err, tt.wantErr)
			}
		})
	}
}
