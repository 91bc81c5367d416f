// SPDX-License-Identifier: MPL-2.0

package shell

import (
	_ "embed"
	"fmt"
)

// preambleBody defines the ANSI palette and the travis_* helpers that emitted
// directives call.
//
//go:embed preamble.sh
var preambleBody string

// Preamble returns the script header: interpreter line, retry budget and helpers.
func Preamble() string {
	return fmt.Sprintf("#!/bin/bash\n\nTRAVIS_RETRY_ATTEMPTS=%d\n\n%s", RetryAttempts, preambleBody)
}
