// SPDX-License-Identifier: MPL-2.0

package runtime

import "github.com/oschwald/travis-build/pkg/types"

// Result is the outcome of running a script.
type Result struct {
	// ExitCode is the script's exit status.
	ExitCode types.ExitCode
	// Error is set when the script could not be run at all (parse failure,
	// interpreter setup). A non-zero ExitCode alone is not an error.
	Error error
	// Output holds captured stdout when running with RunCapture.
	Output string
	// ErrOutput holds captured stderr when running with RunCapture.
	ErrOutput string
}

// Success reports whether the script ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

func errorResult(err error) *Result {
	return &Result{ExitCode: 1, Error: err}
}
