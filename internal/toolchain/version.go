// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid toolchain version")

type (
	// Version is a version specifier handed to a version manager. It may be a
	// shell expression such as "$(< .nvmrc)" evaluated when the script runs.
	Version string

	// InvalidVersionError is returned when a Version is empty or spans lines.
	// It wraps ErrInvalidVersion for errors.Is() compatibility.
	InvalidVersionError struct {
		Value Version
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid toolchain version %q (must be non-empty and single-line)", e.Value)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// Validate returns an error if the Version is empty, whitespace-only or multi-line.
func (v Version) Validate() error {
	if strings.TrimSpace(string(v)) == "" || strings.ContainsAny(string(v), "\r\n") {
		return &InvalidVersionError{Value: v}
	}
	return nil
}

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }
