// SPDX-License-Identifier: MPL-2.0

// Package buildconfig reads the per-build configuration (.travis.yml or
// .travis.toml) and exposes it as an immutable BuildConfig.
//
// Documents are decoded into generic maps, validated against the embedded
// #BuildConfig CUE schema and never mutated afterwards. The schema is open:
// keys consumed by language adapters this package does not know about are
// preserved and reachable through Raw.
package buildconfig
