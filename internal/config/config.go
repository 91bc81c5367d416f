// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oschwald/travis-build/internal/issue"
	"github.com/oschwald/travis-build/pkg/cueutil"
	"github.com/oschwald/travis-build/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "travis-build"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// EnvAppHost overrides app_host.
	EnvAppHost = "TRAVIS_BUILD_APP_HOST"
	// EnvNPMCache overrides hosts.npm_cache.
	EnvNPMCache = "TRAVIS_BUILD_NPM_CACHE"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the configuration directory using platform-specific
// conventions.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Path returns the config file that Load would read for opts, or the default
// location when none exists yet.
func Path(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath.String(), nil
	}
	dir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions resolves the settings file, merges it over the defaults and
// environment bindings, and returns the path it read ("" when defaults only).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("app_host", defaults.AppHost.String())
	v.SetDefault("hosts.npm_cache", defaults.Hosts.NPMCache)
	v.SetDefault("script.validate", defaults.Script.Validate)
	v.SetDefault("script.quote_values", defaults.Script.QuoteValues)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	if err := v.BindEnv("app_host", EnvAppHost); err != nil {
		return nil, "", fmt.Errorf("failed to bind %s: %w", EnvAppHost, err)
	}
	if err := v.BindEnv("hosts.npm_cache", EnvNPMCache); err != nil {
		return nil, "", fmt.Errorf("failed to bind %s: %w", EnvNPMCache, err)
	}

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'travis-build config dump' for a complete example").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("app_host and " + EnvAppHost + " take a bare host name such as files.example.com").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the explicit file, then the config directory, then
// ./config.cue. An explicit file must exist; the others are optional.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'travis-build config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %w", fs.ErrNotExist)).
				BuildError()
		}
		return path, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	candidates := []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	}
	if opts.BaseDir != "" {
		candidates[1] = filepath.Join(opts.BaseDir.String(), candidates[1])
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return configDirPath.String(), nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE settings file against #Config and merges it into v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	schema, err := cueutil.CompileSchema(configSchema, "#Config")
	if err != nil {
		return err
	}
	unified, err := schema.ValidateBytes(data, cueutil.WithFilename(path))
	if err != nil {
		return err
	}
	configMap, err := cueutil.DecodeMap(unified, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a complete settings file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// travis-build settings\n\n")

	fmt.Fprintf(&sb, "app_host: %q\n", cfg.AppHost)

	sb.WriteString("\nhosts: {\n")
	fmt.Fprintf(&sb, "\tnpm_cache: %q\n", cfg.Hosts.NPMCache)
	sb.WriteString("}\n")

	sb.WriteString("\nscript: {\n")
	fmt.Fprintf(&sb, "\tvalidate:     %v\n", cfg.Script.Validate)
	fmt.Fprintf(&sb, "\tquote_values: %v\n", cfg.Script.QuoteValues)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
