// SPDX-License-Identifier: MPL-2.0

// Package watch recompiles a build configuration when it changes on disk.
//
// A Watcher observes one project directory. Events for files matching the
// configured glob patterns are collected and, once the directory has been
// quiet for the debounce period, handed to a callback in a single batch.
package watch
