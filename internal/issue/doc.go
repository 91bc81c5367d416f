// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown guidance for the CLI.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds longer Markdown help for well-known failure
// classes, rendered in the terminal with glamour.
package issue
