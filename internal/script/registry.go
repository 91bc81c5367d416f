// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/oschwald/travis-build/pkg/buildconfig"
)

// ErrUnknownLanguage is the sentinel error wrapped by UnknownLanguageError.
var ErrUnknownLanguage = errors.New("unknown language")

type (
	// UnknownLanguageError is returned when no adapter handles a language.
	UnknownLanguageError struct {
		Language buildconfig.Language
	}

	// Registry maps language names and aliases to adapters. It is safe for
	// concurrent use.
	Registry struct {
		mu       sync.RWMutex
		adapters map[string]*Adapter
		aliases  map[string]string
	}
)

// DefaultRegistry holds every adapter of this package.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(Generic)
	DefaultRegistry.Register(NodeJS)
}

// Error implements the error interface.
func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q", e.Language)
}

// Unwrap returns ErrUnknownLanguage for errors.Is() compatibility.
func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]*Adapter),
		aliases:  make(map[string]string),
	}
}

// Register adds a. It panics on an empty name or when the name or an alias is
// already taken.
func (r *Registry) Register(a *Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Name == "" {
		panic("script: cannot register adapter with empty name")
	}
	for _, name := range append([]string{a.Name}, a.Aliases...) {
		if r.taken(name) {
			panic(fmt.Sprintf("script: language %q already registered", name))
		}
	}
	r.adapters[a.Name] = a
	for _, alias := range a.Aliases {
		r.aliases[alias] = a.Name
	}
}

// Lookup returns the adapter for a language name or alias.
func (r *Registry) Lookup(lang buildconfig.Language) (*Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := lang.String()
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	if a, ok := r.adapters[name]; ok {
		return a, nil
	}
	return nil, &UnknownLanguageError{Language: lang}
}

// Names returns the canonical adapter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.adapters))
}

func (r *Registry) taken(name string) bool {
	_, isAdapter := r.adapters[name]
	_, isAlias := r.aliases[name]
	return isAdapter || isAlias
}
