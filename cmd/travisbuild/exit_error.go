// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/oschwald/travis-build/pkg/types"
)

// ExitError ends travis-build with Code. A build script that did not pass
// leaves Err nil: its own output already explains the failure, so
// reportError stays quiet.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// buildResult converts the status of a build script into the command result.
func buildResult(code types.ExitCode) error {
	if code.IsSuccess() {
		return nil
	}
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("build %s (exit status %d)", e.Code.Outcome(), e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
