package interp

import (
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/rsm"
	"github.com/gql-lang/cfpq/value"

	"github.com/gql-lang/cfpq/ast"
)

func (ip *Interp) evalUnary(n *ast.Unary) (value.Value, error) {
	v, err := ip.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		switch x := v.(type) {
		case value.Int:
			return -x, nil
		case value.Real:
			return -x, nil
		}
		return nil, typeErr(n.Operand.Pos(), v, "int", "real")
	case ast.OpNot:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, typeErr(n.Position, v, "bool")
		}
		return !b, nil
	case ast.OpStar:
		lifted, _ := value.AsFA(v)
		switch x := lifted.(type) {
		case value.FA:
			return value.FA{Automaton: automaton.Star(x.Automaton)}, nil
		case value.RSM:
			return nil, errs.New(errs.TypeError, n.Position, "Kleene star is not defined on RSM values")
		}
		return nil, typeErr(n.Position, v, "FA", "string")
	default:
		return nil, errs.New(errs.NotImplemented, n.Position, "unknown unary operator %q", n.Op)
	}
}

func (ip *Interp) evalBinary(n *ast.Binary) (value.Value, error) {
	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		return ip.evalLogic(n)
	}
	l, err := ip.eval(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := ip.eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpMul:
		return mul(n, l, r)
	case ast.OpDiv:
		return div(n, l, r)
	case ast.OpAdd:
		return add(n, l, r)
	case ast.OpSub:
		return sub(n, l, r)
	case ast.OpAnd2:
		return bitOrSetOrAuto(n, l, r, true)
	case ast.OpOr2:
		return bitOrSetOrAuto(n, l, r, false)
	case ast.OpEq:
		return value.Bool(structEqual(l, r)), nil
	case ast.OpNeq:
		return value.Bool(!structEqual(l, r)), nil
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return compare(n, l, r)
	case ast.OpIn, ast.OpNotIn:
		return member(n, l, r)
	default:
		return nil, errs.New(errs.NotImplemented, n.Position, "unknown binary operator %q", n.Op)
	}
}

func (ip *Interp) evalLogic(n *ast.Binary) (value.Value, error) {
	l, err := ip.eval(n.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := l.(value.Bool)
	if !ok {
		return nil, typeErr(n.Left.Pos(), l, "bool")
	}
	r, err := ip.eval(n.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := r.(value.Bool)
	if !ok {
		return nil, typeErr(n.Right.Pos(), r, "bool")
	}
	if n.Op == ast.OpAnd {
		return lb && rb, nil
	}
	return lb || rb, nil
}

func mul(n *ast.Binary, l, r value.Value) (value.Value, error) {
	switch a := l.(type) {
	case value.Int:
		switch b := r.(type) {
		case value.Int:
			return a * b, nil
		case value.Real:
			return value.Real(a) * b, nil
		}
	case value.Real:
		switch b := r.(type) {
		case value.Int:
			return a * value.Real(b), nil
		case value.Real:
			return a * b, nil
		}
	case value.Str:
		if b, ok := r.(value.Int); ok {
			return value.Str(repeat(string(a), int64(b))), nil
		}
	}
	if i, ok := l.(value.Int); ok {
		if s, ok := r.(value.Str); ok {
			return value.Str(repeat(string(s), int64(i))), nil
		}
	}
	return nil, typeErr(n.Position, l, "int", "real", "string")
}

func repeat(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func div(n *ast.Binary, l, r value.Value) (value.Value, error) {
	switch a := l.(type) {
	case value.Int:
		switch b := r.(type) {
		case value.Int:
			if b == 0 {
				return nil, errs.New(errs.TypeError, n.Position, "division by zero")
			}
			if a%b == 0 {
				return a / b, nil
			}
			return value.Real(a) / value.Real(b), nil
		case value.Real:
			if b == 0 {
				return nil, errs.New(errs.TypeError, n.Position, "division by zero")
			}
			return value.Real(a) / b, nil
		}
	case value.Real:
		switch b := r.(type) {
		case value.Int:
			if b == 0 {
				return nil, errs.New(errs.TypeError, n.Position, "division by zero")
			}
			return a / value.Real(b), nil
		case value.Real:
			if b == 0 {
				return nil, errs.New(errs.TypeError, n.Position, "division by zero")
			}
			return a / b, nil
		}
	}
	return nil, typeErr(n.Position, l, "int", "real")
}

// stringify renders a Value for string concatenation, unlike String()
// which quotes Str values for diagnostic printing (spec.md §4.6: "+ with
// any string operand coerces the other side via its plain textual form").
func stringify(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return v.String()
}

func add(n *ast.Binary, l, r value.Value) (value.Value, error) {
	_, lStr := l.(value.Str)
	_, rStr := r.(value.Str)
	if lStr || rStr {
		return value.Str(stringify(l) + stringify(r)), nil
	}
	switch a := l.(type) {
	case value.Int:
		switch b := r.(type) {
		case value.Int:
			return a + b, nil
		case value.Real:
			return value.Real(a) + b, nil
		}
	case value.Real:
		switch b := r.(type) {
		case value.Int:
			return a + value.Real(b), nil
		case value.Real:
			return a + b, nil
		}
	}
	if isAutomatonLike(l) || isAutomatonLike(r) {
		return concatAuto(n, l, r)
	}
	return nil, typeErr(n.Position, l, "int", "real", "string", "FA", "RSM")
}

func isAutomatonLike(v value.Value) bool {
	switch v.(type) {
	case value.FA, value.RSM:
		return true
	}
	return false
}

func concatAuto(n *ast.Binary, l, r value.Value) (value.Value, error) {
	lFA, lOk := l.(value.FA)
	rFA, rOk := r.(value.FA)
	if lOk && rOk {
		return value.FA{Automaton: automaton.Concat(lFA.Automaton, rFA.Automaton)}, nil
	}
	if !lOk {
		return nil, typeErr(n.Left.Pos(), l, "int", "real", "string", "FA")
	}
	return nil, errs.New(errs.TypeError, n.Position, "'+' concatenation of RSM values is not defined")
}

func sub(n *ast.Binary, l, r value.Value) (value.Value, error) {
	switch a := l.(type) {
	case value.Int:
		switch b := r.(type) {
		case value.Int:
			return a - b, nil
		case value.Real:
			return value.Real(a) - b, nil
		}
	case value.Real:
		switch b := r.(type) {
		case value.Int:
			return a - value.Real(b), nil
		case value.Real:
			return a - b, nil
		}
	}
	return nil, typeErr(n.Position, l, "int", "real")
}

// bitOrSetOrAuto implements both '&' (and=true) and '|' (and=false) across
// int (bitwise), Set (intersect/union), and FA/RSM (grammar intersect/union)
// per spec.md §4.6's operator table.
func bitOrSetOrAuto(n *ast.Binary, l, r value.Value, and bool) (value.Value, error) {
	if a, ok := l.(value.Int); ok {
		if b, ok := r.(value.Int); ok {
			if and {
				return a & b, nil
			}
			return a | b, nil
		}
	}
	if a, ok := l.(*value.Set); ok {
		if b, ok := r.(*value.Set); ok {
			if and {
				return value.Intersect(a, b), nil
			}
			return value.Union(a, b), nil
		}
	}
	lLifted, lIsAuto := value.AsFA(l)
	rLifted, rIsAuto := value.AsFA(r)
	if lIsAuto || rIsAuto || isAutomatonLike(l) || isAutomatonLike(r) {
		return automatonOp(n, lLifted, rLifted, and)
	}
	return nil, typeErr(n.Position, l, "int", "set", "FA", "RSM")
}

func automatonOp(n *ast.Binary, l, r value.Value, and bool) (value.Value, error) {
	lFA, lIsFA := l.(value.FA)
	rFA, rIsFA := r.(value.FA)
	lRSM, lIsRSM := l.(value.RSM)
	rRSM, rIsRSM := r.(value.RSM)

	if lIsFA && rIsFA {
		if and {
			return value.FA{Automaton: automaton.Intersect(lFA.Automaton, rFA.Automaton)}, nil
		}
		return value.FA{Automaton: automaton.Union(lFA.Automaton, rFA.Automaton)}, nil
	}
	if and {
		switch {
		case lIsRSM && rIsFA:
			return value.RSM{R: rsm.Intersect(lRSM.R, rFA.Automaton)}, nil
		case lIsFA && rIsRSM:
			return value.RSM{R: rsm.Intersect(rRSM.R, lFA.Automaton)}, nil
		}
		return nil, errs.New(errs.TypeError, n.Position, "'&' is not defined between two RSM values")
	}
	// '|': any FA/RSM combination produces an RSM.
	var aR, bR *rsm.RSM
	switch {
	case lIsRSM:
		aR = lRSM.R
	case lIsFA:
		aR = rsm.FromFA(automaton.Nonterminal("_lhs"), lFA.Automaton)
	default:
		return nil, typeErr(n.Position, l, "FA", "RSM")
	}
	switch {
	case rIsRSM:
		bR = rRSM.R
	case rIsFA:
		bR = rsm.FromFA(automaton.Nonterminal("_rhs"), rFA.Automaton)
	default:
		return nil, typeErr(n.Position, r, "FA", "RSM")
	}
	return value.RSM{R: rsm.Union(aR, bR)}, nil
}

func structEqual(l, r value.Value) bool {
	if l.Kind() != r.Kind() {
		return false
	}
	switch a := l.(type) {
	case value.Tuple:
		b := r.(value.Tuple)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !structEqual(a[i], b[i]) {
				return false
			}
		}
		return true
	case *value.Set:
		return a.Equal(r.(*value.Set))
	default:
		return l.String() == r.String()
	}
}

func compare(n *ast.Binary, l, r value.Value) (value.Value, error) {
	var cmp int
	switch a := l.(type) {
	case value.Int:
		b, ok := r.(value.Int)
		if !ok {
			return nil, typeErr(n.Position, r, "int")
		}
		cmp = cmpInt64(int64(a), int64(b))
	case value.Real:
		b, ok := r.(value.Real)
		if !ok {
			return nil, typeErr(n.Position, r, "real")
		}
		cmp = cmpFloat64(float64(a), float64(b))
	case value.Str:
		b, ok := r.(value.Str)
		if !ok {
			return nil, typeErr(n.Position, r, "string")
		}
		cmp = cmpString(string(a), string(b))
	default:
		return nil, typeErr(n.Position, l, "int", "real", "string")
	}
	switch n.Op {
	case ast.OpLt:
		return value.Bool(cmp < 0), nil
	case ast.OpGt:
		return value.Bool(cmp > 0), nil
	case ast.OpLe:
		return value.Bool(cmp <= 0), nil
	case ast.OpGe:
		return value.Bool(cmp >= 0), nil
	}
	return nil, errs.New(errs.NotImplemented, n.Position, "unknown comparison %q", n.Op)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func member(n *ast.Binary, l, r value.Value) (value.Value, error) {
	s, ok := r.(*value.Set)
	if !ok {
		return nil, typeErr(n.Right.Pos(), r, "set")
	}
	found := s.Contains(l)
	if n.Op == ast.OpNotIn {
		return value.Bool(!found), nil
	}
	return value.Bool(found), nil
}
