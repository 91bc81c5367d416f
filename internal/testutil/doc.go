// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that run compiled scripts.
package testutil
