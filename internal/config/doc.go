// SPDX-License-Identifier: MPL-2.0

// Package config loads the compiler settings using Viper with CUE as the file format.
//
// Settings are read from config.cue in the platform configuration directory
// ($XDG_CONFIG_HOME/travis-build on Linux, ~/Library/Application Support/travis-build
// on macOS, %APPDATA%\travis-build on Windows), validated against the embedded
// #Config schema and merged over built-in defaults. Environment variables that
// the worker side historically provided, such as TRAVIS_BUILD_APP_HOST, are
// bound once here and handed to the compiler as explicit values.
package config
