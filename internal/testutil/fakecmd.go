// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/interp"
)

// FakeCommands stands in for external commands when a script runs in the
// virtual runtime. Each faked command returns the next exit code from its
// sequence; the last code repeats. Unfaked commands run for real.
type FakeCommands struct {
	mu    sync.Mutex
	exits map[string][]int
	calls [][]string
}

// NewFakeCommands creates an empty set of fakes.
func NewFakeCommands() *FakeCommands {
	return &FakeCommands{exits: make(map[string][]int)}
}

// Set fakes name with the given exit codes. No codes means always succeed.
func (f *FakeCommands) Set(name string, codes ...int) *FakeCommands {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(codes) == 0 {
		codes = []int{0}
	}
	f.exits[name] = slices.Clone(codes)
	return f
}

// Middleware returns exec middleware for runtime.WithExecMiddleware.
func (f *FakeCommands) Middleware(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		code, ok := f.take(args)
		if !ok {
			return next(ctx, args)
		}
		if code != 0 {
			return interp.ExitStatus(code)
		}
		return nil
	}
}

// Calls returns every recorded invocation joined with spaces, in order.
func (f *FakeCommands) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.Join(c, " "))
	}
	return out
}

// Invoked reports whether a faked command ran with exactly this command line.
func (f *FakeCommands) Invoked(line string) bool {
	return slices.Contains(f.Calls(), line)
}

// Count returns how many times a faked command line ran.
func (f *FakeCommands) Count(line string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == line {
			n++
		}
	}
	return n
}

func (f *FakeCommands) take(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	seq, ok := f.exits[args[0]]
	if !ok {
		return 0, false
	}
	f.calls = append(f.calls, slices.Clone(args))
	code := seq[0]
	if len(seq) > 1 {
		f.exits[args[0]] = seq[1:]
	}
	return code, true
}
