// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ExitCodeAssertionAbort is the status travis_assert terminates a script with.
const ExitCodeAssertionAbort ExitCode = 2

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the exit status of a compiled build script.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means the build passed.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the build script passed.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// IsAssertionAbort returns true if the script was stopped by a failed assertion.
func (c ExitCode) IsAssertionAbort() bool { return c == ExitCodeAssertionAbort }

// Outcome names the build result: "passed", "stopped" when an assertion
// ended the script, otherwise "failed".
func (c ExitCode) Outcome() string {
	switch {
	case c.IsSuccess():
		return "passed"
	case c.IsAssertionAbort():
		return "stopped"
	}
	return "failed"
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
