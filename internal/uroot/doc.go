// SPDX-License-Identifier: MPL-2.0

// Package uroot provides the utilities compiled build scripts rely on as
// built-ins of the virtual runtime, so a script can be verified locally
// without GNU coreutils on the host.
//
// mkdir, rm and cat wrap the u-root project's pkg/core implementations
// (github.com/u-root/u-root). date, grep, sleep and tr are implemented here
// with the subset of flags the shell helpers and language adapters emit.
//
// Errors from built-ins are printed with a "[uroot] <cmd>:" prefix and turned
// into exit status 1, so a failing built-in behaves like a failing binary and
// the script's own assertions decide what happens next.
package uroot
