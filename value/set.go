package value

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/errs"
	gql "github.com/gql-lang/cfpq"
)

// Set is a value-semantic, immutable-from-the-language's-viewpoint set of
// Values, backed by a treeset ordered by canonical key so iteration is
// deterministic within a process (spec.md §5 only forbids leaking
// iteration order into *observable* output, not internal determinism).
type Set struct {
	tree *treeset.Set
}

func keyComparator(a, b interface{}) int {
	return strings.Compare(a.(keyedValue).key, b.(keyedValue).key)
}

// keyedValue pairs a Value with its precomputed canonical key so the
// treeset comparator never needs to recompute (or fail on) StructuralHash.
type keyedValue struct {
	key string
	v   Value
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{tree: treeset.NewWith(keyComparator)}
}

// canonicalKey returns a string that uniquely identifies v up to the
// value-equality relation spec.md §3 requires of sets (structural for
// scalars/tuples, automaton.StructuralHash for FA). RSM and Lambda values
// have no defined set equality and are rejected as set elements.
func canonicalKey(v Value) (string, error) {
	switch x := v.(type) {
	case Bool, Int, Real, Str:
		return v.Kind().String() + ":" + v.String(), nil
	case Tuple:
		parts := make([]string, len(x))
		for i, e := range x {
			k, err := canonicalKey(e)
			if err != nil {
				return "", err
			}
			parts[i] = k
		}
		return "tuple:(" + strings.Join(parts, "|") + ")", nil
	case FA:
		h, err := automaton.StructuralHash(x.Automaton)
		if err != nil {
			return "", errs.New(errs.TypeError, gql.NoPosition, "cannot hash FA for set membership: %v", err)
		}
		return "FA:" + h, nil
	case RSM:
		return "", errs.New(errs.TypeError, gql.NoPosition, "RSM values cannot be set elements")
	case Lambda:
		return "", errs.New(errs.TypeError, gql.NoPosition, "lambdas cannot be set elements")
	default:
		return "", errs.New(errs.TypeError, gql.NoPosition, "unsupported set element kind %s", v.Kind())
	}
}

// Add inserts v, returning a TypeError if v cannot be a set element.
func (s *Set) Add(v Value) error {
	key, err := canonicalKey(v)
	if err != nil {
		return err
	}
	s.tree.Add(keyedValue{key: key, v: v})
	return nil
}

// Contains reports whether v (by canonical key) is a member.
func (s *Set) Contains(v Value) bool {
	key, err := canonicalKey(v)
	if err != nil {
		return false
	}
	return s.tree.Contains(keyedValue{key: key})
}

// Values returns the set's members sorted by canonical key.
func (s *Set) Values() []Value {
	raw := s.tree.Values()
	out := make([]Value, len(raw))
	for i, r := range raw {
		out[i] = r.(keyedValue).v
	}
	return out
}

// Size returns the number of elements.
func (s *Set) Size() int { return s.tree.Size() }

// Union returns a new set containing every element of s and other.
func Union(s, other *Set) *Set {
	out := NewSet()
	for _, v := range s.Values() {
		out.Add(v)
	}
	for _, v := range other.Values() {
		out.Add(v)
	}
	return out
}

// Intersect returns a new set containing elements present in both s and other.
func Intersect(s, other *Set) *Set {
	out := NewSet()
	for _, v := range s.Values() {
		if other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

// Equal reports value-equality per spec.md §3: same size, same elements.
func (s *Set) Equal(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, v := range s.Values() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func (Set) isValue() {}
func (Set) Kind() Kind { return KindSet }

func (s *Set) String() string {
	vals := s.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	sort.Strings(parts) // printed order is unspecified (spec.md §5); stable for test diffs
	return "{" + strings.Join(parts, ", ") + "}"
}
