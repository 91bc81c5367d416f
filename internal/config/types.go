// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidHost is the sentinel error wrapped by InvalidHostError.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	hostPattern = regexp.MustCompile(`^[A-Za-z0-9.-]+(:[0-9]+)?$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Host is a host name with an optional port, without scheme or path.
	// The zero value means "not configured".
	Host string

	// InvalidHostError is returned when a Host contains a scheme, path or whitespace.
	InvalidHostError struct {
		Value Host
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the compiler settings.
	Config struct {
		// AppHost serves nvm.sh for the nvm self-update (env TRAVIS_BUILD_APP_HOST).
		AppHost Host `json:"app_host" mapstructure:"app_host"`
		// Hosts names auxiliary services the compiled script may use.
		Hosts HostsConfig `json:"hosts" mapstructure:"hosts"`
		// Script controls post-processing of the compiled script.
		Script ScriptConfig `json:"script" mapstructure:"script"`
		// UI configures the CLI.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// HostsConfig names auxiliary services.
	HostsConfig struct {
		// NPMCache is an npm proxy used when `cache: npm` is set.
		NPMCache string `json:"npm_cache" mapstructure:"npm_cache"`
	}

	// ScriptConfig controls post-processing of compiled scripts.
	ScriptConfig struct {
		// Validate parses every compiled script and rejects malformed output.
		Validate bool `json:"validate" mapstructure:"validate"`
		// QuoteValues shell-quotes `env:` values instead of inserting them as written.
		QuoteValues bool `json:"quote_values" mapstructure:"quote_values"`
	}

	// UIConfig configures the CLI.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Script: ScriptConfig{
			Validate:    true,
			QuoteValues: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks every field and returns an *InvalidConfigError listing all problems.
func (c Config) Validate() error {
	var errs []error
	if err := c.AppHost.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the Host.
func (h Host) String() string { return string(h) }

// Validate returns an error for a non-empty Host that is not host[:port].
func (h Host) Validate() error {
	if h != "" && !hostPattern.MatchString(string(h)) {
		return &InvalidHostError{Value: h}
	}
	return nil
}

// Error implements the error interface for InvalidHostError.
func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host %q: expected host[:port] without scheme or path", e.Value)
}

// Unwrap returns ErrInvalidHost for errors.Is() compatibility.
func (e *InvalidHostError) Unwrap() error { return ErrInvalidHost }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error unless cs is auto, dark or light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	}
	return &InvalidColorSchemeError{Value: cs}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }
