// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// Two document sources are supported: CUE source (the compiler settings file)
// and already-decoded Go values (build configurations read from YAML or TOML).
// Both are unified with a named definition of the schema and validated; errors
// carry JSON-path prefixes so users can locate the offending key.
//
//	//go:embed buildconfig_schema.cue
//	var schemaSource string
//
//	schema, err := cueutil.CompileSchema(schemaSource, "#BuildConfig")
//	if err != nil {
//	    return err
//	}
//	if _, err := schema.ValidateValue(raw, cueutil.WithFilename(".travis.yml")); err != nil {
//	    return err  // Error includes CUE path for debugging
//	}
package cueutil
