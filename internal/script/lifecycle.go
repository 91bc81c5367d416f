// SPDX-License-Identifier: MPL-2.0

package script

import (
	"github.com/oschwald/travis-build/internal/cache"
	"github.com/oschwald/travis-build/internal/shell"
	"github.com/oschwald/travis-build/pkg/buildconfig"

	"github.com/charmbracelet/log"
)

const (
	// PhaseExport declares build-identifying environment variables.
	PhaseExport Phase = "export"
	// PhaseSetup prepares the environment and bootstraps the toolchain.
	PhaseSetup Phase = "setup"
	// PhaseCache registers directories with the directory cache.
	PhaseCache Phase = "cache"
	// PhaseAnnounce prints tool versions.
	PhaseAnnounce Phase = "announce"
	// PhaseInstall installs dependencies.
	PhaseInstall Phase = "install"
	// PhaseScript runs the build.
	PhaseScript Phase = "script"
)

type (
	// Phase names a lifecycle stage.
	Phase string

	// Context is handed to every hook of a compilation.
	Context struct {
		// Sh receives the directives.
		Sh *shell.Builder
		// Config is the build being compiled. Read-only.
		Config *buildconfig.BuildConfig
		// Settings are the compiler settings resolved at the entry point.
		Settings Settings
		// Cache is the directory cache named by the build's slug.
		Cache *cache.DirectoryCache
		// Logger receives compile diagnostics, never script output.
		Logger *log.Logger
	}

	// Hook appends the directives of one phase.
	Hook func(c *Context) error

	// SlugFunc computes the cache slug of a build. It must be pure.
	SlugFunc func(cfg *buildconfig.BuildConfig) (string, error)

	// Adapter describes a language. Only Name is required; nil hooks use the
	// base implementation.
	Adapter struct {
		// Name is the `language:` value selecting the adapter.
		Name string
		// Aliases are alternative `language:` values.
		Aliases []string
		// Summary is a markdown description shown by `travis-build languages`.
		Summary string

		Export     Hook
		Setup      Hook
		SetupCache Hook
		Announce   Hook
		Install    Hook
		Script     Hook

		CacheSlug SlugFunc
		// UseDirectoryCache reports whether the adapter needs the directory
		// cache even without `cache.directories`.
		UseDirectoryCache func(cfg *buildconfig.BuildConfig) bool
	}
)

// Phases returns the lifecycle phases in execution order.
func Phases() []Phase {
	return []Phase{PhaseExport, PhaseSetup, PhaseCache, PhaseAnnounce, PhaseInstall, PhaseScript}
}

// String returns the phase name.
func (p Phase) String() string { return string(p) }

// Sequence returns a hook running hooks in order, stopping at the first error.
// Nil hooks are skipped.
func Sequence(hooks ...Hook) Hook {
	return func(c *Context) error {
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// hook returns the adapter's hook for p, or the base hook.
func (a *Adapter) hook(p Phase) Hook {
	var h, base Hook
	switch p {
	case PhaseExport:
		h, base = a.Export, BaseExport
	case PhaseSetup:
		h, base = a.Setup, BaseSetup
	case PhaseCache:
		h, base = a.SetupCache, BaseSetupCache
	case PhaseAnnounce:
		h, base = a.Announce, BaseAnnounce
	case PhaseInstall:
		h, base = a.Install, BaseInstall
	case PhaseScript:
		h, base = a.Script, BaseScript
	}
	if h == nil {
		return base
	}
	return h
}

// slug returns the adapter's cache slug, or the base slug.
func (a *Adapter) slug(cfg *buildconfig.BuildConfig) (string, error) {
	if a.CacheSlug == nil {
		return BaseCacheSlug(cfg)
	}
	return a.CacheSlug(cfg)
}

// usesDirectoryCache reports whether the directory cache phase has work.
func (a *Adapter) usesDirectoryCache(cfg *buildconfig.BuildConfig) bool {
	if BaseUseDirectoryCache(cfg) {
		return true
	}
	return a.UseDirectoryCache != nil && a.UseDirectoryCache(cfg)
}
