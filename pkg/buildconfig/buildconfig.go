// SPDX-License-Identifier: MPL-2.0

package buildconfig

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type (
	// BuildConfig is an immutable view of a build configuration document.
	BuildConfig struct {
		raw    map[string]any
		source string
	}

	// EnvVar is one `env:` entry. Name is empty for entries without one.
	EnvVar struct {
		Name  string
		Value string
	}
)

// New wraps an already decoded document. The map is copied; callers may
// reuse it afterwards.
func New(raw map[string]any) *BuildConfig {
	if raw == nil {
		return &BuildConfig{raw: map[string]any{}}
	}
	return &BuildConfig{raw: maps.Clone(raw)}
}

// Source returns the file the configuration was read from, if any.
func (c *BuildConfig) Source() string {
	return c.source
}

// Language returns the configured language, or LanguageGeneric.
func (c *BuildConfig) Language() Language {
	if s, ok := c.String("language"); ok && s != "" {
		return Language(strings.ToLower(s))
	}
	return LanguageGeneric
}

// Keys returns the top-level keys in sorted order.
func (c *BuildConfig) Keys() []string {
	return slices.Sorted(maps.Keys(c.raw))
}

// Raw returns the value stored under key as decoded.
func (c *BuildConfig) Raw(key string) (any, bool) {
	v, ok := c.raw[key]
	return v, ok
}

// Has reports whether key is set to something other than null, false or an
// empty string or list.
func (c *BuildConfig) Has(key string) bool {
	v, ok := c.raw[key]
	if !ok {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	}
	return true
}

// String returns the scalar stored under key, or the first element when the
// value is a list.
func (c *BuildConfig) String(key string) (string, bool) {
	v, ok := c.raw[key]
	if !ok {
		return "", false
	}
	if list, isList := v.([]any); isList {
		if len(list) == 0 {
			return "", false
		}
		v = list[0]
	}
	return scalar(v)
}

// Strings returns every scalar stored under key. A scalar value yields a
// single-element slice.
func (c *BuildConfig) Strings(key string) []string {
	v, ok := c.raw[key]
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		list = []any{v}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := scalar(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// Cache reports whether the cache named name is enabled. `cache:` may be a
// single name, a list of names or a map of names to booleans.
func (c *BuildConfig) Cache(name string) bool {
	switch v := c.raw["cache"].(type) {
	case string:
		return v == name
	case []any:
		return slices.ContainsFunc(v, func(item any) bool {
			s, ok := scalar(item)
			return ok && s == name
		})
	case map[string]any:
		enabled, ok := v[name].(bool)
		return ok && enabled
	}
	return false
}

// CacheDirectories returns the `cache.directories` entries.
func (c *BuildConfig) CacheDirectories() []string {
	m, ok := c.raw["cache"].(map[string]any)
	if !ok {
		return nil
	}
	return New(m).Strings("directories")
}

// Env returns the `env:` entries in document order. A map is returned in key order.
func (c *BuildConfig) Env() []EnvVar {
	if m, ok := c.raw["env"].(map[string]any); ok {
		vars := make([]EnvVar, 0, len(m))
		for _, name := range slices.Sorted(maps.Keys(m)) {
			value, _ := scalar(m[name])
			vars = append(vars, EnvVar{Name: name, Value: value})
		}
		return vars
	}
	entries := c.Strings("env")
	vars := make([]EnvVar, 0, len(entries))
	for _, entry := range entries {
		vars = append(vars, ParseEnvVar(entry))
	}
	return vars
}

// ParseEnvVar splits "NAME=value". An entry without "=" has no name.
func ParseEnvVar(entry string) EnvVar {
	name, value, ok := strings.Cut(entry, "=")
	if !ok {
		return EnvVar{Value: entry}
	}
	return EnvVar{Name: strings.TrimSpace(name), Value: value}
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case nil:
		return "", false
	}
	return fmt.Sprint(v), false
}
