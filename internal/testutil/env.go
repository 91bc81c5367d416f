// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

// ScriptEnv returns a minimal environment for running scripts in dir: the
// host PATH plus HOME pointing at a fresh temporary directory.
func ScriptEnv(t testing.TB) []string {
	t.Helper()
	return []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + t.TempDir(),
	}
}

// MustWriteFile writes data to path, failing the test on error.
func MustWriteFile(t testing.TB, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
