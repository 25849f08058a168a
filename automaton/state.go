package automaton

import "fmt"

// State is an opaque FA state token. The kernel never assumes states are
// small integers: algebra combinators build composite states (tagged
// union members, or (qa,qb) pairs after intersection) and downstream code
// (notably rsm's box lookups) relies on being able to pattern-match a
// PairState back apart, per spec.md §4.1's intersect contract.
type State interface {
	isState()
	String() string
}

// SimpleState is a plain integer state, minted fresh by regex compilation
// and by the Thompson combinators (Union/Concat/Star) for their new
// start/accept states.
type SimpleState int

func (SimpleState) isState() {}
func (s SimpleState) String() string { return fmt.Sprintf("q%d", int(s)) }

// NamedState wraps a graph node lifted into an NFA by FromGraph, so that
// `nodes of` / `edges of` queries can recover the original node identity.
type NamedState string

func (NamedState) isState() {}
func (s NamedState) String() string { return string(s) }

// TaggedState disambiguates the states of two operand automata being
// combined by Union/Concat/Star, the way renaming-by-copy would in a
// textbook Thompson construction, without actually needing a deep copy of
// the operand's transition table.
type TaggedState struct {
	Tag   int
	Inner State
}

func (TaggedState) isState() {}
func (s TaggedState) String() string { return fmt.Sprintf("%d:%s", s.Tag, s.Inner) }

// PairState is the state produced by Intersect: a pair (qa, qb) from the
// two operand automata's state sets. Per spec.md §4.1, states are NOT
// relabeled to opaque integers here — RSM intersection recovers the pair
// directly.
type PairState struct {
	A, B State
}

func (PairState) isState() {}
func (s PairState) String() string { return fmt.Sprintf("(%s,%s)", s.A, s.B) }
