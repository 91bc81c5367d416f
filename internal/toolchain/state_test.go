// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"slices"
	"testing"
)

func TestState_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from State
		ok   bool
		want State
	}{
		{StateInstalling, true, StateResolved},
		{StateInstalling, false, StateFallback},
		{StateFallback, true, StateResolved},
		{StateFallback, false, StateFailed},
		{StateFailed, true, StateFailed},
		{StateResolved, false, StateResolved},
	}

	for _, tt := range tests {
		if got := tt.from.Next(tt.ok); got != tt.want {
			t.Errorf("%s.Next(%v) = %s, want %s", tt.from, tt.ok, got, tt.want)
		}
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	if got := State(42).String(); got != "unknown" {
		t.Errorf("State(42).String() = %q, want %q", got, "unknown")
	}
	if got := StateFallback.String(); got != "fallback" {
		t.Errorf("StateFallback.String() = %q, want %q", got, "fallback")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		install  bool
		selectOK bool
		want     []State
	}{
		{name: "install succeeds", install: true, want: []State{StateInstalling, StateResolved}},
		{name: "select succeeds", install: false, selectOK: true, want: []State{StateInstalling, StateFallback, StateResolved}},
		{name: "both fail", want: []State{StateInstalling, StateFallback, StateFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(func(s State) bool {
				if s == StateInstalling {
					return tt.install
				}
				return tt.selectOK
			})
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}
