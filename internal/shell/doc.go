// SPDX-License-Identifier: MPL-2.0

// Package shell compiles build directives into bash source.
//
// A Builder accepts directives (Cmd, Raw, Export, Echo) and control-flow blocks
// (If/Else, Fold) and renders them into a single script prefixed by a preamble of
// helper functions. Blocks are tracked on an explicit stack so every directive is
// attributed to the innermost open block, and every block is closed exactly once.
//
// Command policy (echo, timing, retry, assertion, fold) is resolved per directive
// at emission time from functional options:
//
//	sh := shell.NewBuilder()
//	sh.If("-f package.json", func() {
//		sh.Cmd("npm install", shell.WithRetry(true), shell.WithFold("install"))
//	})
//	sh.Else(func() {
//		sh.Cmd("make test")
//	})
//	script := sh.Script()
//
// Values interpolated into directives are trusted: the builder quotes only its own
// syntax. Misusing the builder (appending to a closed block, an Else that does not
// directly follow an If, reading the script while blocks are open) panics with a
// *MisuseError.
package shell
