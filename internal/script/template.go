// SPDX-License-Identifier: MPL-2.0

package script

import (
	"fmt"
	"io"
	"strconv"

	"github.com/oschwald/travis-build/internal/cache"
	"github.com/oschwald/travis-build/internal/config"
	"github.com/oschwald/travis-build/internal/shell"
	"github.com/oschwald/travis-build/pkg/buildconfig"

	"github.com/charmbracelet/log"
)

type (
	// Settings are compiler settings taken from the configuration file and
	// environment once, at the entry point.
	Settings struct {
		// AppHost serves nvm.sh for the nvm self-update. Empty skips it.
		AppHost string
		// NPMCacheHost is the npm proxy used with `cache: npm`.
		NPMCacheHost string
		// QuoteValues shell-quotes `env:` values.
		QuoteValues bool
		// Validate parses the compiled script and rejects malformed output.
		Validate bool
	}

	// Compiled is the result of a compilation. It is immutable.
	Compiled struct {
		// Language is the canonical name of the adapter used.
		Language string
		// Script is the complete build script.
		Script string
		// CacheSlug names the build's dependency cache.
		CacheSlug string
		// CacheDirectories are the directories registered with the cache.
		CacheDirectories []string
	}

	// Option configures a compilation.
	Option func(*compileOptions)

	compileOptions struct {
		settings Settings
		registry *Registry
		logger   *log.Logger
	}
)

// DefaultSettings returns the settings used without a configuration file.
func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultConfig())
}

// SettingsFrom extracts the compiler settings from cfg.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		AppHost:      cfg.AppHost.String(),
		NPMCacheHost: cfg.Hosts.NPMCache,
		QuoteValues:  cfg.Script.QuoteValues,
		Validate:     cfg.Script.Validate,
	}
}

// WithSettings sets the compiler settings.
func WithSettings(s Settings) Option {
	return func(o *compileOptions) { o.settings = s }
}

// WithRegistry selects adapters from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *compileOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger receiving compile diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *compileOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func resolveOptions(opts []Option) compileOptions {
	o := compileOptions{
		settings: DefaultSettings(),
		registry: DefaultRegistry,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Compile turns cfg into a build script.
//
// Errors are returned for unknown languages, unusable configuration values and,
// with Settings.Validate, for output that does not parse. Adapter bugs that
// misuse the builder panic with *shell.MisuseError.
func Compile(cfg *buildconfig.BuildConfig, opts ...Option) (*Compiled, error) {
	o := resolveOptions(opts)

	adapter, err := o.registry.Lookup(cfg.Language())
	if err != nil {
		return nil, err
	}
	logger := o.logger.With("language", adapter.Name)
	logger.Debug("resolved adapter", "requested", cfg.Language())

	slug, err := adapter.slug(cfg)
	if err != nil {
		return nil, fmt.Errorf("cache slug: %w", err)
	}

	c := &Context{
		Sh:       shell.NewBuilder(),
		Config:   cfg,
		Settings: o.settings,
		Cache:    cache.NewDirectoryCache(slug),
		Logger:   logger,
	}
	for _, p := range Phases() {
		logger.Debug("running phase", "phase", p)
		if err := phaseHook(adapter, cfg, p)(c); err != nil {
			return nil, fmt.Errorf("%s phase: %w", p, err)
		}
	}

	out := c.Sh.Script()
	if o.settings.Validate {
		if err := shell.Validate(out); err != nil {
			return nil, err
		}
	}
	logger.Debug("compiled script", "bytes", len(out), "slug", slug)

	return &Compiled{
		Language:         adapter.Name,
		Script:           out,
		CacheSlug:        slug,
		CacheDirectories: c.Cache.Directories(),
	}, nil
}

// CacheSlug computes the cache slug of cfg without compiling it.
func CacheSlug(cfg *buildconfig.BuildConfig, opts ...Option) (string, error) {
	o := resolveOptions(opts)
	adapter, err := o.registry.Lookup(cfg.Language())
	if err != nil {
		return "", err
	}
	return adapter.slug(cfg)
}

// phaseHook returns the hook the template runs for p. User `install:` and
// `script:` commands replace the adapter's phase.
func phaseHook(a *Adapter, cfg *buildconfig.BuildConfig, p Phase) Hook {
	switch p {
	case PhaseCache:
		if !a.usesDirectoryCache(cfg) {
			return BaseSetupCache
		}
		return Sequence(setupDirectoryCache, a.hook(p))
	case PhaseInstall:
		if cmds := cfg.Strings("install"); len(cmds) > 0 {
			return userInstall(cmds)
		}
	case PhaseScript:
		if cmds := cfg.Strings("script"); len(cmds) > 0 {
			return userScript(cmds)
		}
	}
	return a.hook(p)
}

func setupDirectoryCache(c *Context) error {
	dirs := c.Config.CacheDirectories()
	if len(dirs) == 0 {
		return nil
	}
	c.Sh.Fold("cache.directories", func() {
		for _, dir := range dirs {
			c.Cache.Add(c.Sh, dir)
		}
	})
	return nil
}

func userInstall(cmds []string) Hook {
	return func(c *Context) error {
		for i, cmd := range cmds {
			fold := string(PhaseInstall)
			if len(cmds) > 1 {
				fold += "." + strconv.Itoa(i+1)
			}
			c.Sh.Cmd(cmd, shell.WithRetry(true), shell.WithFold(fold))
		}
		return nil
	}
}

func userScript(cmds []string) Hook {
	return func(c *Context) error {
		for _, cmd := range cmds {
			c.Sh.Cmd(cmd)
		}
		return nil
	}
}
