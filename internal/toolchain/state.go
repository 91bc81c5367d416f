// SPDX-License-Identifier: MPL-2.0

package toolchain

const (
	// StateInstalling attempts a network install of the requested version.
	StateInstalling State = iota
	// StateFallback selects an already-installed version after a failed install.
	StateFallback
	// StateFailed means no usable toolchain exists (terminal state).
	StateFailed
	// StateResolved means a usable toolchain was installed or selected (terminal state).
	StateResolved
)

// State is a step of the bootstrap protocol.
type State int32

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateFallback:
		return "fallback"
	case StateFailed:
		return "failed"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateResolved
}

// Next returns the state reached when the step performed in s succeeds (ok)
// or fails. Terminal states map to themselves.
func (s State) Next(ok bool) State {
	switch s {
	case StateInstalling:
		if ok {
			return StateResolved
		}
		return StateFallback
	case StateFallback:
		if ok {
			return StateResolved
		}
		return StateFailed
	default:
		return s
	}
}

// Resolve walks the machine from StateInstalling, asking outcome whether the
// step performed in each non-terminal state succeeds. It returns every state
// visited, ending with a terminal one.
func Resolve(outcome func(State) bool) []State {
	s := StateInstalling
	trace := []State{s}
	for !s.Terminal() {
		s = s.Next(outcome(s))
		trace = append(trace, s)
	}
	return trace
}
