package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	var out bytes.Buffer
	ip := New(&out)
	err = ip.Run(prog)
	return out.String(), err
}

// Scenario 1 (spec.md §8): `let a = "test"; >>> a; print a;` prints
// 'test' twice.
func TestScenarioSimpleExpressionsPrintsTwice(t *testing.T) {
	out, err := run(t, `let a = "test"; >>> a; print a;`)
	require.NoError(t, err)
	assert.Equal(t, "'test'\n'test'\n", out)
}

// Scenario 4 (spec.md §8): map/filter over int sets.
func TestScenarioMapFilter(t *testing.T) {
	out, err := run(t, `print ({0, 1} mapped with \x -> x + 1);`)
	require.NoError(t, err)
	assert.Equal(t, "{1, 2}\n", out)

	out, err = run(t, `print (0..3 filtered with \x -> x != 1 mapped with \x -> x + 1);`)
	require.NoError(t, err)
	assert.Equal(t, "{1, 3}\n", out)
}

// Scenario 5 (spec.md §8): `(- "1")` raises a TypeError at the location
// of "1" reporting expected {int,real}, actual string.
func TestScenarioUnaryNegateTypeError(t *testing.T) {
	_, err := run(t, `print (- "1");`)
	require.Error(t, err)
	e, ok := err.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.TypeError, e.Kind)
	assert.Contains(t, e.Msg, "string")
}

// Scenario 6 (spec.md §8): a `with` builder on a lifted string FA.
func TestScenarioWithBuilder(t *testing.T) {
	out, err := run(t, `print (start states of ("a" with only start states {1}));`)
	require.NoError(t, err)
	assert.Equal(t, "{'q1'}\n", out)

	out, err = run(t, `print (final states of ("a" with only start states {1}));`)
	require.NoError(t, err)
	assert.Equal(t, "{'q1'}\n", out)
}

func TestLetBindingIsVisibleToLaterStatements(t *testing.T) {
	out, err := run(t, `let x = 1; let y = x + 1; print y;`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestUnboundNameIsNameError(t *testing.T) {
	_, err := run(t, `print z;`)
	require.Error(t, err)
	e, ok := err.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.NameError, e.Kind)
}

func TestBareExprStatementDoesNotPrint(t *testing.T) {
	out, err := run(t, `1 + 1;`)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// Lambdas close over a snapshot of scope: redefining a captured name in a
// later `let` does not affect an already-captured closure (spec.md §8
// "Scope hygiene").
func TestLambdaClosureSnapshotIsNotLive(t *testing.T) {
	out, err := run(t, `
		let inc = 1;
		let addInc = \x -> x + inc;
		let inc = 100;
		print ({5} mapped with addInc);
	`)
	require.NoError(t, err)
	assert.Equal(t, "{6}\n", out)
}

func TestSetOperatorsAndMembership(t *testing.T) {
	out, err := run(t, `print ({1, 2} & {2, 3});`)
	require.NoError(t, err)
	assert.Equal(t, "{2}\n", out)

	out, err = run(t, `print ({1, 2} | {2, 3});`)
	require.NoError(t, err)
	assert.Equal(t, "{1, 2, 3}\n", out)

	out, err = run(t, `print (2 in {1, 2, 3});`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, `print (5 not in {1, 2, 3});`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestStringRepeatAndConcat(t *testing.T) {
	out, err := run(t, `print ("ab" * 3);`)
	require.NoError(t, err)
	assert.Equal(t, "'ababab'\n", out)

	out, err = run(t, `print ("x=" + 1);`)
	require.NoError(t, err)
	assert.Equal(t, "'x=1'\n", out)
}

func TestKleeneStarOnLiftedString(t *testing.T) {
	out, err := run(t, `print (start states of ("a"*));`)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "q"))
}

func TestRecEvaluatesToSelfReferentialRSM(t *testing.T) {
	out, err := run(t, `print (nodes of (rec S));`)
	require.NoError(t, err)
	assert.Equal(t, "{'q0', 'q1'}\n", out)
}
