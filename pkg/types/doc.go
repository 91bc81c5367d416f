// SPDX-License-Identifier: MPL-2.0

// Package types defines value types shared by the compiler, its runtimes and
// the CLI. It imports only the standard library.
package types
