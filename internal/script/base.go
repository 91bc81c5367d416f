// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"

	"github.com/oschwald/travis-build/internal/cache"
	"github.com/oschwald/travis-build/internal/shell"
	"github.com/oschwald/travis-build/pkg/buildconfig"
)

const (
	// DefaultScript is run when neither the adapter nor the build names a
	// test command.
	DefaultScript = "make test"

	// EnvLanguage carries the adapter name into the build.
	EnvLanguage = "TRAVIS_LANGUAGE"
)

// ErrInvalidEnvVar is the sentinel error wrapped by InvalidEnvVarError.
var ErrInvalidEnvVar = errors.New("invalid env variable")

// InvalidEnvVarError is returned when an `env:` entry names a variable that
// cannot be exported.
type InvalidEnvVarError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidEnvVarError) Error() string {
	return fmt.Sprintf("invalid env variable name %q", e.Name)
}

// Unwrap returns ErrInvalidEnvVar for errors.Is() compatibility.
func (e *InvalidEnvVarError) Unwrap() error { return ErrInvalidEnvVar }

// BaseExport exports TRAVIS_LANGUAGE and every named `env:` entry. Values are
// inserted as written unless Settings.QuoteValues is set.
func BaseExport(c *Context) error {
	c.Sh.Export(EnvLanguage, c.Config.Language().String(), shell.WithEcho(false))
	for _, ev := range c.Config.Env() {
		if ev.Name == "" {
			continue
		}
		if !shell.IsVariableName(ev.Name) {
			return &InvalidEnvVarError{Name: ev.Name}
		}
		value := ev.Value
		if c.Settings.QuoteValues {
			quoted, err := shell.Quote(value)
			if err != nil {
				return fmt.Errorf("quote env %s: %w", ev.Name, err)
			}
			value = quoted
		}
		c.Sh.Export(ev.Name, value)
	}
	return nil
}

// BaseSetup does nothing.
func BaseSetup(*Context) error { return nil }

// BaseSetupCache does nothing; `cache.directories` are handled by the template.
func BaseSetupCache(*Context) error { return nil }

// BaseAnnounce does nothing.
func BaseAnnounce(*Context) error { return nil }

// BaseInstall does nothing.
func BaseInstall(*Context) error { return nil }

// BaseScript runs DefaultScript.
func BaseScript(c *Context) error {
	c.Sh.Cmd(DefaultScript)
	return nil
}

// BaseCacheSlug returns the language-independent slug.
func BaseCacheSlug(*buildconfig.BuildConfig) (string, error) {
	return cache.NewSlug().String(), nil
}

// BaseUseDirectoryCache reports whether `cache.directories` lists anything.
func BaseUseDirectoryCache(cfg *buildconfig.BuildConfig) bool {
	return len(cfg.CacheDirectories()) > 0
}

// Generic is the adapter for builds without language-specific tooling.
var Generic = &Adapter{
	Name:    buildconfig.LanguageGeneric.String(),
	Aliases: []string{"minimal"},
	Summary: "Runs `make test` unless `script:` says otherwise. No toolchain is installed.",
}
