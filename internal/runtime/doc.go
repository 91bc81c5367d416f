// SPDX-License-Identifier: MPL-2.0

// Package runtime executes compiled build scripts locally.
//
// The Virtual runtime interprets a script in-process with mvdan/sh, so a compiled
// script can be exercised without a build VM: exec middleware can stand in for
// toolchain commands such as nvm or npm, and the script's exit status is
// reported as a Result. Remote execution on build workers is not handled here.
package runtime
