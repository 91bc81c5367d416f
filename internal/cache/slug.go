// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// Separator joins slug fields.
	Separator = "--"

	slugRoot = "cache"
)

// ErrInvalidField is the sentinel error wrapped by InvalidFieldError.
var ErrInvalidField = errors.New("invalid cache slug field")

type (
	// Field is a named discriminator appended to a slug as "name-value".
	Field struct {
		Name  string
		Value string
	}

	// InvalidFieldError is returned when a Field would make a slug ambiguous.
	// It wraps ErrInvalidField for errors.Is() compatibility.
	InvalidFieldError struct {
		Field  Field
		Reason string
	}

	// Slug is an immutable, append-only cache key under construction.
	Slug struct {
		parts []string
	}
)

// Error implements the error interface.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid cache slug field %s=%q: %s", e.Field.Name, e.Field.Value, e.Reason)
}

// Unwrap returns ErrInvalidField so callers can use errors.Is for programmatic detection.
func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

// Validate returns an error if the field name is empty or either part
// contains the separator or whitespace.
func (f Field) Validate() error {
	switch {
	case f.Name == "":
		return &InvalidFieldError{Field: f, Reason: "name must not be empty"}
	case strings.Contains(f.Name, Separator) || strings.Contains(f.Value, Separator):
		return &InvalidFieldError{Field: f, Reason: "must not contain " + Separator}
	case strings.ContainsFunc(f.Name+f.Value, isSpace):
		return &InvalidFieldError{Field: f, Reason: "must not contain whitespace"}
	}
	return nil
}

// NewSlug returns the base slug shared by every language.
func NewSlug() Slug {
	return Slug{parts: []string{slugRoot}}
}

// With returns a copy of s extended by f.
func (s Slug) With(f Field) (Slug, error) {
	if err := f.Validate(); err != nil {
		return s, err
	}
	parts := slices.Clip(slices.Clone(s.parts))
	return Slug{parts: append(parts, f.Name+"-"+f.Value)}, nil
}

// String renders the slug.
func (s Slug) String() string {
	if len(s.parts) == 0 {
		return slugRoot
	}
	return strings.Join(s.parts, Separator)
}

// For builds the slug for a language at a version, followed by extra fields
// in the order given.
func For(language, version string, extra ...Field) (string, error) {
	s, err := NewSlug().With(Field{Name: language, Value: version})
	if err != nil {
		return "", err
	}
	for _, f := range extra {
		if s, err = s.With(f); err != nil {
			return "", err
		}
	}
	return s.String(), nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
