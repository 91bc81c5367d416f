// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for travis-build.
//
// The root command loads the compiler settings once, before any subcommand
// runs, and hands them to the compiler explicitly. Subcommands compile a
// build configuration, run the compiled script in the embedded shell, print
// cache slugs and describe the supported languages.
package cmd
