// SPDX-License-Identifier: MPL-2.0

package buildconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/oschwald/travis-build/pkg/cueutil"
	"github.com/oschwald/travis-build/pkg/types"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatYAML decodes .travis.yml documents.
	FormatYAML Format = "yaml"
	// FormatTOML decodes .travis.toml documents.
	FormatTOML Format = "toml"

	// DefaultFile is looked up when no path is given.
	DefaultFile types.FilesystemPath = ".travis.yml"
)

//go:embed buildconfig_schema.cue
var buildConfigSchema string

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported build config format")

// Format is a build configuration serialization.
type Format string

// FormatOf returns the format implied by the path's extension.
func FormatOf(path types.FilesystemPath) (Format, error) {
	switch path.Ext() {
	case "yml", "yaml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads and validates the build configuration at path.
func Load(path types.FilesystemPath) (*BuildConfig, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read build config: %w", err)
	}
	return Parse(data, format, path.String())
}

// Parse decodes data in the given format and validates it against the
// #BuildConfig schema. filename is used in error messages.
func Parse(data []byte, format Format, filename string) (*BuildConfig, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	raw := map[string]any{}
	switch format {
	case FormatYAML:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	schema, err := cueutil.CompileSchema(buildConfigSchema, "#BuildConfig")
	if err != nil {
		return nil, err
	}
	if _, err := schema.ValidateValue(raw, cueutil.WithFilename(filename)); err != nil {
		return nil, err
	}

	cfg := New(raw)
	cfg.source = filename
	if err := cfg.Language().Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}
