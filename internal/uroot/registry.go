// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"mvdan.cc/sh/v3/interp"
)

// DefaultRegistry holds every built-in of this package.
var DefaultRegistry = NewRegistry()

// Registry maps command names to built-ins. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. It panics on an empty or duplicate name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		panic("uroot: cannot register command with empty name")
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("uroot: command %q already registered", name))
	}
	r.commands[name] = cmd
}

// Lookup retrieves a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.commands))
}

// Middleware is interpreter exec middleware running registered commands as
// built-ins and passing everything else to next.
func (r *Registry) Middleware(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 {
			return next(ctx, args)
		}
		cmd, ok := r.Lookup(args[0])
		if !ok {
			return next(ctx, args)
		}
		return exitStatus(ctx, cmd.Run(ctx, args))
	}
}

// exitStatus reports err on stderr and converts it to exit status 1. Errors
// that already carry a status are returned unchanged.
func exitStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return status
	}
	fmt.Fprintln(GetHandlerContext(ctx).Stderr, err)
	return interp.ExitStatus(1)
}

func init() {
	for _, cmd := range []Command{
		newMkdirCommand(),
		newRmCommand(),
		newCatCommand(),
		newDateCommand(),
		newGrepCommand(),
		newSleepCommand(),
		newTrCommand(),
	} {
		DefaultRegistry.Register(cmd)
	}
}
