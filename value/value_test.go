package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringPrintsSingleQuoted(t *testing.T) {
	assert.Equal(t, "'test'", Str("test").String())
}

func TestSetEqualityIgnoresInsertionOrder(t *testing.T) {
	a := NewSet()
	require.NoError(t, a.Add(Int(1)))
	require.NoError(t, a.Add(Int(2)))

	b := NewSet()
	require.NoError(t, b.Add(Int(2)))
	require.NoError(t, b.Add(Int(1)))

	assert.True(t, a.Equal(b))
}

func TestSetUnionAndIntersect(t *testing.T) {
	a := NewSet()
	a.Add(Int(1))
	a.Add(Int(2))
	b := NewSet()
	b.Add(Int(2))
	b.Add(Int(3))

	u := Union(a, b)
	assert.Equal(t, 3, u.Size())

	i := Intersect(a, b)
	assert.Equal(t, 1, i.Size())
	assert.True(t, i.Contains(Int(2)))
}

func TestSetRejectsLambdaElements(t *testing.T) {
	s := NewSet()
	err := s.Add(Lambda{})
	assert.Error(t, err)
}

func TestSetDedupesDuplicateInserts(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(Str("x")))
	require.NoError(t, s.Add(Str("x")))
	assert.Equal(t, 1, s.Size())
}

func TestAsFALiftsPlainString(t *testing.T) {
	v, ok := AsFA(Str("a"))
	require.True(t, ok)
	fa, ok := v.(FA)
	require.True(t, ok)
	assert.True(t, fa.Automaton.Accepts(nil) == false)
}

func TestTupleString(t *testing.T) {
	tu := Tuple{Int(1), Str("x")}
	assert.Equal(t, "(1, 'x')", tu.String())
}
