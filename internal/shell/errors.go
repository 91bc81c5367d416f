// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrMisuse is the sentinel error wrapped by MisuseError.
	ErrMisuse = errors.New("shell builder misuse")
	// ErrMalformedScript is the sentinel error wrapped by MalformedScriptError.
	ErrMalformedScript = errors.New("malformed script")
)

type (
	// MisuseError describes a programming error in the code driving a Builder.
	// The Builder panics with it; it is never returned as a build-time condition.
	MisuseError struct {
		// Op is the builder operation that was misused (e.g., "Else", "Cmd").
		Op string
		// Reason explains what was wrong.
		Reason string
	}

	// MalformedScriptError is returned when compiled output does not parse as bash.
	// It wraps ErrMalformedScript for errors.Is() compatibility.
	MalformedScriptError struct {
		Err error
	}
)

// Error implements the error interface.
func (e *MisuseError) Error() string {
	return fmt.Sprintf("shell: %s: %s", e.Op, e.Reason)
}

// Unwrap returns ErrMisuse so callers can use errors.Is for programmatic detection.
func (e *MisuseError) Unwrap() error { return ErrMisuse }

// Error implements the error interface.
func (e *MalformedScriptError) Error() string {
	return fmt.Sprintf("compiled script does not parse: %v", e.Err)
}

// Unwrap returns ErrMalformedScript so callers can use errors.Is for programmatic detection.
func (e *MalformedScriptError) Unwrap() error { return ErrMalformedScript }

func misuse(op, format string, args ...any) {
	panic(&MisuseError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
