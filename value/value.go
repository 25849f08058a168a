// Package value implements the interpreter's tagged Value sum described in
// spec.md §3: Bool, Int, Real, Str, Tuple, Set, FA, RSM and Lambda. Set
// equality and ordering are realized with emirpasic/gods' treeset, the
// same ordered-collection idiom lr/tables.go uses for CFSM state sets,
// keyed by a canonical string (StructuralHash for FA, a tagged literal
// for scalars) rather than gods' default comparators, since Value is a
// heterogeneous sum with no single natural order. RSM and Lambda values
// are not accepted as set elements.
package value

import (
	"fmt"
	"strconv"

	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/rsm"
)

// Kind tags a Value's dynamic type, used in TypeError messages (spec.md §7).
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindReal
	KindStr
	KindTuple
	KindSet
	KindFA
	KindRSM
	KindLambda
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindStr:
		return "string"
	case KindTuple:
		return "tuple"
	case KindSet:
		return "set"
	case KindFA:
		return "FA"
	case KindRSM:
		return "RSM"
	case KindLambda:
		return "lambda"
	default:
		return "?"
	}
}

// Value is any GQL runtime value.
type Value interface {
	isValue()
	Kind() Kind
	String() string
}

// Bool is a boolean value.
type Bool bool

func (Bool) isValue()         {}
func (Bool) Kind() Kind       { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) isValue()         {}
func (Int) Kind() Kind       { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real is a 64-bit floating-point value.
type Real float64

func (Real) isValue()         {}
func (Real) Kind() Kind       { return KindReal }
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

// Str is a string value. Printed form is single-quoted (spec.md §8
// Scenario 1: `let a = "test"; >>> a;` prints `'test'`).
type Str string

func (Str) isValue()         {}
func (Str) Kind() Kind       { return KindStr }
func (s Str) String() string { return "'" + string(s) + "'" }

// Tuple is a fixed-length heterogeneous value, produced by `edges of X`
// (as (u, label, v) triples) and consumed by tuple-pattern lambdas.
type Tuple []Value

func (Tuple) isValue() {}
func (Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	s := "("
	for i, v := range t {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + ")"
}

// FA wraps an automaton.NFA as a first-class value.
type FA struct {
	Automaton *automaton.NFA
}

func (FA) isValue()   {}
func (FA) Kind() Kind { return KindFA }
func (f FA) String() string {
	return fmt.Sprintf("<FA: %d states, %d start, %d final>",
		len(f.Automaton.States()), len(f.Automaton.StartStates()), len(f.Automaton.FinalStates()))
}

// RSM wraps an rsm.RSM as a first-class value; Name records the name a
// `rec N` literal was built from, for diagnostics only (empty for RSMs
// built by algebra).
type RSM struct {
	Name string
	R    *rsm.RSM
}

func (RSM) isValue()   {}
func (RSM) Kind() Kind { return KindRSM }
func (r RSM) String() string {
	name := r.Name
	if name == "" {
		name = string(r.R.Start)
	}
	return fmt.Sprintf("<RSM: %s, %d boxes>", name, len(r.R.Boxes))
}

// AsFA coerces v to an FA per spec.md §4.6's T-Smb rule: a plain string is
// lifted to the singleton FA accepting exactly that string. Any other kind
// is returned unchanged (FA, RSM pass through; everything else is left for
// the caller to reject as a TypeError).
func AsFA(v Value) (Value, bool) {
	if s, ok := v.(Str); ok {
		return FA{Automaton: singletonFA(string(s))}, true
	}
	if fa, ok := v.(FA); ok {
		return fa, true
	}
	return v, false
}

func singletonFA(s string) *automaton.NFA {
	a := automaton.New()
	start := automaton.SimpleState(0)
	final := automaton.SimpleState(1)
	a.SetStart(start)
	a.SetFinal(final)
	a.AddTransition(start, automaton.Terminal(s), final)
	return a
}
