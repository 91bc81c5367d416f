// SPDX-License-Identifier: MPL-2.0

// Package script compiles a BuildConfig into a build script.
//
// Compilation drives a fixed lifecycle: export, setup, cache setup, announce,
// install and script. Each phase is a Hook appending directives to a
// shell.Builder. A language is described by an Adapter, a record of the hooks
// whose behavior differs from the generic defaults; nil hooks fall back to the
// base implementation. The cache slug is computed by a separate pure function
// and does not depend on the other phases having run.
package script
