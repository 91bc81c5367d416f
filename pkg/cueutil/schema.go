// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE definition. A Schema owns its CUE context and is
// not safe for concurrent use.
type Schema struct {
	ctx        *cue.Context
	definition cue.Value
	name       string
}

// CompileSchema compiles src and looks up the definition named by path
// (e.g., "#Config").
func CompileSchema(src, path string) (*Schema, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileString(src)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", compiled.Err())
	}

	def := compiled.LookupPath(cue.ParsePath(path))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", path, def.Err())
	}

	return &Schema{ctx: ctx, definition: def, name: path}, nil
}

// Name returns the definition path the schema was compiled for.
func (s *Schema) Name() string {
	return s.name
}

// ValidateBytes compiles CUE source data, unifies it with the schema and
// validates the result.
func (s *Schema) ValidateBytes(data []byte, opts ...Option) (cue.Value, error) {
	o := resolve(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	doc := s.ctx.CompileBytes(data, cue.Filename(o.filename))
	if doc.Err() != nil {
		return cue.Value{}, FormatError(doc.Err(), o.filename)
	}
	return s.unify(doc, o)
}

// ValidateValue encodes a decoded Go value (maps, slices and scalars as
// produced by YAML or TOML decoders), unifies it with the schema and
// validates the result.
func (s *Schema) ValidateValue(v any, opts ...Option) (cue.Value, error) {
	o := resolve(opts)

	doc := s.ctx.Encode(v)
	if doc.Err() != nil {
		return cue.Value{}, FormatError(doc.Err(), o.filename)
	}
	return s.unify(doc, o)
}

func (s *Schema) unify(doc cue.Value, o options) (cue.Value, error) {
	unified := s.definition.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// DecodeMap decodes a validated value into a generic map suitable for
// merging into viper.
func DecodeMap(v cue.Value, filename string) (map[string]any, error) {
	var m map[string]any
	if err := v.Decode(&m); err != nil {
		return nil, FormatError(err, filename)
	}
	return m, nil
}
