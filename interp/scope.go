package interp

import "github.com/gql-lang/cfpq/value"

// Frame is a flat name->value binding, the unit the scope stack is built
// from (spec.md §3 "Scope: mapping name -> Value"). Frame itself satisfies
// value.Env so a captured snapshot can be stored directly as a Lambda's
// Closure.
type Frame map[string]value.Value

// Lookup is part of value.Env.
func (f Frame) Lookup(name string) (value.Value, bool) {
	v, ok := f[name]
	return v, ok
}

// Stack is the interpreter's scope stack described in spec.md §4.6:
// frames[0] is the global scope; each active lambda call pushes one frame
// on top, popped on return. `let` always binds into frames[0].
type Stack struct {
	frames []Frame
}

// NewStack returns a stack with an empty global frame.
func NewStack() *Stack {
	return &Stack{frames: []Frame{{}}}
}

// Bind defines name in the global (base) frame, per spec.md §4.6's "let x
// = e; ... binds x in frames[0]".
func (s *Stack) Bind(name string, v value.Value) {
	s.frames[0][name] = v
}

// Lookup resolves name by walking frames top (most recently pushed) to
// bottom (global), so a call frame's parameter shadows a global of the
// same name.
func (s *Stack) Lookup(name string) (value.Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Snapshot flattens the entire currently-visible stack into one frame,
// inner scopes shadowing outer ones, and is what a Lambda literal's
// Closure captures at the moment it is evaluated (spec.md §4.6's "closure
// captures a SNAPSHOT of the current scope" / spec.md §8's scope-hygiene
// property: later global mutation must not retroactively change it).
func (s *Stack) Snapshot() Frame {
	out := make(Frame)
	for _, f := range s.frames {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}

// Push adds a new call frame on top of the stack.
func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes the top-most call frame; it must not be called on a stack
// holding only the global frame.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}
