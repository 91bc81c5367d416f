// SPDX-License-Identifier: MPL-2.0

package buildconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/oschwald/travis-build/pkg/buildconfig"
	"github.com/oschwald/travis-build/pkg/cueutil"
	"github.com/oschwald/travis-build/pkg/types"
)

func mustParse(t *testing.T, doc string) *buildconfig.BuildConfig {
	t.Helper()
	cfg, err := buildconfig.Parse([]byte(doc), buildconfig.FormatYAML, ".travis.yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	cfg := mustParse(t, `
language: node_js
node_js:
  - "6"
  - 8
cache:
  - npm
  - yarn
env:
  - FOO=bar
  - BAZ="a b"
npm_args: --production
`)

	if got := cfg.Language(); got != "node_js" {
		t.Errorf("Language() = %q, want %q", got, "node_js")
	}
	if got, _ := cfg.String("node_js"); got != "6" {
		t.Errorf("String(node_js) = %q, want %q", got, "6")
	}
	if got := cfg.Strings("node_js"); !slices.Equal(got, []string{"6", "8"}) {
		t.Errorf("Strings(node_js) = %v", got)
	}
	if !cfg.Cache("npm") || !cfg.Cache("yarn") || cfg.Cache("bundler") {
		t.Error("Cache() does not reflect the cache list")
	}
	want := []buildconfig.EnvVar{{Name: "FOO", Value: "bar"}, {Name: "BAZ", Value: `"a b"`}}
	if got := cfg.Env(); !slices.Equal(got, want) {
		t.Errorf("Env() = %v, want %v", got, want)
	}
	if got, _ := cfg.String("npm_args"); got != "--production" {
		t.Errorf("String(npm_args) = %q", got)
	}
	if got := cfg.Keys(); !slices.Equal(got, []string{"cache", "env", "language", "node_js", "npm_args"}) {
		t.Errorf("Keys() = %v", got)
	}
	if cfg.Source() != ".travis.yml" {
		t.Errorf("Source() = %q", cfg.Source())
	}
}

func TestParse_FloatVersionKeepsDigits(t *testing.T) {
	t.Parallel()

	cfg := mustParse(t, "node_js: 0.10\n")
	// YAML reads 0.10 as the float 0.1; adapters normalize it.
	if got, _ := cfg.String("node_js"); got != "0.1" {
		t.Errorf("String(node_js) = %q, want %q", got, "0.1")
	}
	cfg = mustParse(t, "node_js: 7.10\n")
	if got, _ := cfg.String("node_js"); got != "7.1" {
		t.Errorf("String(node_js) = %q, want %q", got, "7.1")
	}
}

func TestParse_TOML(t *testing.T) {
	t.Parallel()

	cfg, err := buildconfig.Parse([]byte(`
language = "node_js"
node_js = ["8"]
install = ["npm ci"]

[cache]
yarn = true
directories = ["vendor", "$HOME/.cache"]
`), buildconfig.FormatTOML, ".travis.toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cfg.Cache("yarn") || cfg.Cache("npm") {
		t.Error("Cache() does not reflect the cache map")
	}
	if got := cfg.CacheDirectories(); !slices.Equal(got, []string{"vendor", "$HOME/.cache"}) {
		t.Errorf("CacheDirectories() = %v", got)
	}
	if got := cfg.Strings("install"); !slices.Equal(got, []string{"npm ci"}) {
		t.Errorf("Strings(install) = %v", got)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "\n", "# only a comment\n", "null\n"} {
		cfg := mustParse(t, doc)
		if cfg.Language() != buildconfig.LanguageGeneric {
			t.Errorf("Parse(%q).Language() = %q, want %q", doc, cfg.Language(), buildconfig.LanguageGeneric)
		}
		if len(cfg.Keys()) != 0 {
			t.Errorf("Parse(%q).Keys() = %v, want none", doc, cfg.Keys())
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{name: "language not a string", doc: "language: [a]\n", target: cueutil.ErrInvalidDocument},
		{name: "install map", doc: "install: {a: b}\n", target: cueutil.ErrInvalidDocument},
		{name: "directories not a list", doc: "cache: {directories: vendor}\n", target: cueutil.ErrInvalidDocument},
		{name: "language not an identifier", doc: "language: node.js\n", target: buildconfig.ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := buildconfig.Parse([]byte(tt.doc), buildconfig.FormatYAML, ".travis.yml")
			if !errors.Is(err, tt.target) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.doc, err, tt.target)
			}
		})
	}

	if _, err := buildconfig.Parse([]byte("a: [\n"), buildconfig.FormatYAML, ".travis.yml"); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
	if _, err := buildconfig.Parse(nil, buildconfig.Format("ini"), "x.ini"); !errors.Is(err, buildconfig.ErrUnsupportedFormat) {
		t.Errorf("Parse() with unknown format error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".travis.yml")
	if err := os.WriteFile(path, []byte("language: node_js\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildconfig.Load(types.FilesystemPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language() != "node_js" {
		t.Errorf("Language() = %q", cfg.Language())
	}

	if _, err := buildconfig.Load(types.FilesystemPath(filepath.Join(dir, "build.json"))); !errors.Is(err, buildconfig.ErrUnsupportedFormat) {
		t.Errorf("Load(.json) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := buildconfig.Load(""); !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("Load(\"\") error = %v, want ErrInvalidFilesystemPath", err)
	}
	if _, err := buildconfig.Load(types.FilesystemPath(filepath.Join(dir, "missing.yml"))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestBuildConfig_Has(t *testing.T) {
	t.Parallel()

	cfg := buildconfig.New(map[string]any{
		"node_js": "6",
		"nodejs":  nil,
		"empty":   "",
		"list":    []any{},
		"off":     false,
		"on":      true,
		"zero":    0,
	})

	for key, want := range map[string]bool{
		"node_js": true, "nodejs": false, "empty": false, "list": false,
		"off": false, "on": true, "zero": true, "missing": false,
	} {
		if got := cfg.Has(key); got != want {
			t.Errorf("Has(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestBuildConfig_NewCopies(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"language": "node_js"}
	cfg := buildconfig.New(raw)
	raw["language"] = "ruby"
	if cfg.Language() != "node_js" {
		t.Errorf("BuildConfig changed after caller mutated its map: %q", cfg.Language())
	}
	if buildconfig.New(nil).Language() != buildconfig.LanguageGeneric {
		t.Error("New(nil) should behave as an empty config")
	}
}

func TestBuildConfig_Env(t *testing.T) {
	t.Parallel()

	cfg := buildconfig.New(map[string]any{"env": map[string]any{"B": 2, "A": "x"}})
	want := []buildconfig.EnvVar{{Name: "A", Value: "x"}, {Name: "B", Value: "2"}}
	if got := cfg.Env(); !slices.Equal(got, want) {
		t.Errorf("Env() = %v, want %v", got, want)
	}

	cfg = buildconfig.New(map[string]any{"env": "JUSTAVALUE"})
	if got := cfg.Env(); len(got) != 1 || got[0].Name != "" {
		t.Errorf("Env() for entry without name = %v", got)
	}
}

func TestParseEnvVar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry string
		want  buildconfig.EnvVar
	}{
		{"FOO=bar", buildconfig.EnvVar{Name: "FOO", Value: "bar"}},
		{"FOO=a=b", buildconfig.EnvVar{Name: "FOO", Value: "a=b"}},
		{"FOO=", buildconfig.EnvVar{Name: "FOO"}},
		{"=bar", buildconfig.EnvVar{Value: "bar"}},
		{"bar", buildconfig.EnvVar{Value: "bar"}},
	}

	for _, tt := range tests {
		if got := buildconfig.ParseEnvVar(tt.entry); got != tt.want {
			t.Errorf("ParseEnvVar(%q) = %+v, want %+v", tt.entry, got, tt.want)
		}
	}
}

func TestLanguage_Validate(t *testing.T) {
	t.Parallel()

	for _, l := range []buildconfig.Language{"node_js", "generic", "python3"} {
		if err := l.Validate(); err != nil {
			t.Errorf("Language(%q).Validate() = %v", l, err)
		}
	}
	for _, l := range []buildconfig.Language{"", "Node", "node.js", "3d", "c++"} {
		err := l.Validate()
		var langErr *buildconfig.InvalidLanguageError
		if !errors.As(err, &langErr) || !errors.Is(err, buildconfig.ErrInvalidLanguage) {
			t.Errorf("Language(%q).Validate() = %v, want *InvalidLanguageError", l, err)
		}
	}
}
