package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gql-lang/cfpq/ast"
)

func TestParseSimpleExpressions(t *testing.T) {
	prog, err := Parse(`let a = "test"; >>> a; print a;`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 3)

	let, ok := prog.Stmts[0].(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "a", let.Name)
	str, ok := let.Expr.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "test", str.Value)

	_, ok = prog.Stmts[1].(*ast.Print)
	assert.True(t, ok)
	_, ok = prog.Stmts[2].(*ast.Print)
	assert.True(t, ok)
}

func TestParseBareExprStatement(t *testing.T) {
	prog, err := Parse(`1 + 1;`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	_, ok := prog.Stmts[0].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseMapFilterChain(t *testing.T) {
	prog, err := Parse(`print 0..3 filtered with \x -> x != 1 mapped with \x -> x + 1;`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	pr := prog.Stmts[0].(*ast.Print)
	mf, ok := pr.Expr.(*ast.MapFilter)
	require.True(t, ok)
	assert.Equal(t, ast.KindMapped, mf.Kind)
	inner, ok := mf.Target.(*ast.MapFilter)
	require.True(t, ok)
	assert.Equal(t, ast.KindFiltered, inner.Kind)
	_, ok = inner.Target.(*ast.Range)
	assert.True(t, ok)
}

func TestParseWithBuilder(t *testing.T) {
	prog, err := Parse(`print "a" with only start states {1};`)
	require.NoError(t, err)
	pr := prog.Stmts[0].(*ast.Print)
	w, ok := pr.Expr.(*ast.With)
	require.True(t, ok)
	assert.Equal(t, ast.ClauseOnlyStart, w.Clause)
	_, ok = w.States.(*ast.SetLit)
	assert.True(t, ok)
}

func TestParseOfAccessor(t *testing.T) {
	prog, err := Parse(`print edges of load "g.csv";`)
	require.NoError(t, err)
	pr := prog.Stmts[0].(*ast.Print)
	of, ok := pr.Expr.(*ast.Of)
	require.True(t, ok)
	assert.Equal(t, ast.OfEdges, of.What)
	_, ok = of.Target.(*ast.Load)
	assert.True(t, ok)
}

func TestParseKleeneStarPostfixVsMultiply(t *testing.T) {
	prog, err := Parse(`print "a" *; print 2 * 3;`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	u, ok := prog.Stmts[0].(*ast.Print).Expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.OpStar, u.Op)
	assert.True(t, u.Postfix)

	b, ok := prog.Stmts[1].(*ast.Print).Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, b.Op)
}

func TestParseLambdaTuplePattern(t *testing.T) {
	prog, err := Parse(`print \(x, y) -> x + y;`)
	require.NoError(t, err)
	lam, ok := prog.Stmts[0].(*ast.Print).Expr.(*ast.Lambda)
	require.True(t, ok)
	assert.True(t, lam.Param.IsTuple())
	require.Len(t, lam.Param.Elems, 2)
}

func TestParseNotInAndUnaryNot(t *testing.T) {
	prog, err := Parse(`print 1 not in {2, 3}; print not 1 == 1;`)
	require.NoError(t, err)
	bin, ok := prog.Stmts[0].(*ast.Print).Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpNotIn, bin.Op)

	un, ok := prog.Stmts[1].(*ast.Print).Expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.OpNot, un.Op)
	_, ok = un.Operand.(*ast.Binary)
	assert.True(t, ok)
}

func TestParseTypeErrorScenarioShape(t *testing.T) {
	prog, err := Parse(`(- "1");`)
	require.NoError(t, err)
	_, ok := prog.Stmts[0].(*ast.ExprStmt).Expr.(*ast.Unary)
	assert.True(t, ok)
}

func TestParseUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := Parse(`let a = "test;`)
	assert.Error(t, err)
}
