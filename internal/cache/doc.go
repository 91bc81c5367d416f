// SPDX-License-Identifier: MPL-2.0

// Package cache names dependency caches and records the directories they hold.
//
// A slug is a deterministic key such as "cache--node-6" built from the language
// identity, the resolved version and adapter-specific fields. The external cache
// store treats it as opaque; it is never parsed back.
package cache
