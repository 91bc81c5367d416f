// SPDX-License-Identifier: MPL-2.0

package buildconfig

import (
	"errors"
	"fmt"
	"regexp"
)

// LanguageGeneric is used when a build configuration names no language.
const LanguageGeneric Language = "generic"

// ErrInvalidLanguage is the sentinel error wrapped by InvalidLanguageError.
var ErrInvalidLanguage = errors.New("invalid language")

var languagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type (
	// Language identifies the adapter compiling a build, e.g. "node_js".
	Language string

	// InvalidLanguageError is returned when a Language is not a lower-case identifier.
	// It wraps ErrInvalidLanguage for errors.Is() compatibility.
	InvalidLanguageError struct {
		Value Language
	}
)

// Error implements the error interface.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language %q: must match %s", e.Value, languagePattern)
}

// Unwrap returns ErrInvalidLanguage so callers can use errors.Is for programmatic detection.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }

// Validate returns an error unless l is a lower-case identifier.
func (l Language) Validate() error {
	if !languagePattern.MatchString(string(l)) {
		return &InvalidLanguageError{Value: l}
	}
	return nil
}

// String returns the string representation of the Language.
func (l Language) String() string { return string(l) }
