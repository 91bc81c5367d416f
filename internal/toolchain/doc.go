// SPDX-License-Identifier: MPL-2.0

// Package toolchain emits the two-tier toolchain install protocol shared by
// language adapters.
//
// The protocol is a small state machine:
//
//	Installing --ok--> Resolved
//	Installing --fail--> Fallback --ok--> Resolved
//	                     Fallback --fail--> Failed
//
// Installing runs the version manager's install command without assertion.
// Fallback warns and selects an already-present version. Failed warns and
// aborts the script. Resolved exports the version for later phases.
//
// The machine is walked at compile time to emit nested shell branches; the
// branch taken is decided when the script runs. Resolve walks the same machine
// against known outcomes, so the protocol can be checked without generating shell.
package toolchain
