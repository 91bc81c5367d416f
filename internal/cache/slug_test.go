// SPDX-License-Identifier: MPL-2.0

package cache_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/oschwald/travis-build/internal/cache"
	"github.com/oschwald/travis-build/internal/shell"
)

func TestFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		language string
		version  string
		extra    []cache.Field
		want     string
	}{
		{name: "node", language: "node", version: "6", want: "cache--node-6"},
		{name: "dotted version", language: "node", version: "0.10", want: "cache--node-0.10"},
		{name: "extras in order", language: "node", version: "8", extra: []cache.Field{{Name: "yarn", Value: "true"}, {Name: "arch", Value: "arm64"}}, want: "cache--node-8--yarn-true--arch-arm64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cache.For(tt.language, tt.version, tt.extra...)
			if err != nil {
				t.Fatalf("For() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("For() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFor_Deterministic(t *testing.T) {
	t.Parallel()

	extra := cache.Field{Name: "yarn", Value: "true"}
	for _, version := range []string{"0.10", "4", "6", "8.1.2"} {
		a, errA := cache.For("node", version, extra)
		b, errB := cache.For("node", version, extra)
		if errA != nil || errB != nil {
			t.Fatalf("For() errors = %v, %v", errA, errB)
		}
		if a != b {
			t.Errorf("For(node, %s) not deterministic: %q != %q", version, a, b)
		}
	}

	six, _ := cache.For("node", "6", extra)
	eight, _ := cache.For("node", "8", extra)
	if six == eight {
		t.Errorf("For() ignores version: %q", six)
	}
}

func TestSlug_WithDoesNotAlias(t *testing.T) {
	t.Parallel()

	base, err := cache.NewSlug().With(cache.Field{Name: "node", Value: "6"})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
	a, _ := base.With(cache.Field{Name: "a", Value: "1"})
	b, _ := base.With(cache.Field{Name: "b", Value: "2"})
	if a.String() != "cache--node-6--a-1" || b.String() != "cache--node-6--b-2" {
		t.Errorf("With() branches = %q, %q", a, b)
	}
	if base.String() != "cache--node-6" {
		t.Errorf("base mutated to %q", base)
	}
	if got := (cache.Slug{}).String(); got != "cache" {
		t.Errorf("zero Slug.String() = %q, want %q", got, "cache")
	}
}

func TestField_Validate(t *testing.T) {
	t.Parallel()

	for _, f := range []cache.Field{
		{Name: "", Value: "1"},
		{Name: "a--b", Value: "1"},
		{Name: "a", Value: "1--2"},
		{Name: "a", Value: "1 2"},
	} {
		if err := f.Validate(); !errors.Is(err, cache.ErrInvalidField) {
			t.Errorf("Field(%+v).Validate() = %v, want ErrInvalidField", f, err)
		}
	}
	if _, err := cache.For("node", "$(< .nvmrc)"); err == nil {
		t.Error("For() accepted a version containing whitespace")
	}
}

func TestDirectoryCache(t *testing.T) {
	t.Parallel()

	sh := shell.NewBuilder()
	dc := cache.NewDirectoryCache("cache--node-6")
	dc.Add(sh, "$HOME/.yarn-cache")
	dc.Add(sh, "$HOME/.yarn-cache")
	dc.Add(sh, "node_modules")

	if got := dc.Directories(); len(got) != 2 || got[0] != "$HOME/.yarn-cache" || got[1] != "node_modules" {
		t.Errorf("Directories() = %v", got)
	}
	if dc.Slug() != "cache--node-6" {
		t.Errorf("Slug() = %q", dc.Slug())
	}
	script := sh.Script()
	if n := strings.Count(script, "\ntravis_cache_add $HOME/.yarn-cache\n"); n != 1 {
		t.Errorf("travis_cache_add emitted %d times for one directory", n)
	}
}
