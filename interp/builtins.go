package interp

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/ast"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/value"
)

func (ip *Interp) evalWith(n *ast.With) (value.Value, error) {
	t, err := ip.eval(n.Target)
	if err != nil {
		return nil, err
	}
	lifted, _ := value.AsFA(t)
	fa, ok := lifted.(value.FA)
	if !ok {
		return nil, typeErr(n.Target.Pos(), t, "FA", "string")
	}
	sv, err := ip.eval(n.States)
	if err != nil {
		return nil, err
	}
	set, ok := sv.(*value.Set)
	if !ok {
		return nil, typeErr(n.States.Pos(), sv, "set")
	}
	states, err := setToStates(n.States.Pos(), set)
	if err != nil {
		return nil, err
	}
	var out *automaton.NFA
	switch n.Clause {
	case ast.ClauseOnlyStart:
		out = fa.Automaton.WithOnlyStart(states)
	case ast.ClauseOnlyFinal:
		out = fa.Automaton.WithOnlyFinal(states)
	case ast.ClauseAdditionalStart:
		out = fa.Automaton.WithAdditionalStart(states)
	case ast.ClauseAdditionalFinal:
		out = fa.Automaton.WithAdditionalFinal(states)
	default:
		return nil, errs.New(errs.NotImplemented, n.Position, "unknown with-clause %q", n.Clause)
	}
	return value.FA{Automaton: out}, nil
}

// setToStates converts a Set of Int/Str values into automaton states: an
// Int identifies a SimpleState (the numbering singletonFA and the algebra
// combinators mint fresh states from), a Str identifies a NamedState (the
// convention automaton.FromGraph uses for loaded graph nodes).
func setToStates(pos gql.Position, set *value.Set) ([]automaton.State, error) {
	out := make([]automaton.State, 0, set.Size())
	for _, v := range set.Values() {
		switch x := v.(type) {
		case value.Str:
			out = append(out, automaton.NamedState(string(x)))
		case value.Int:
			out = append(out, automaton.SimpleState(int(x)))
		default:
			return nil, errs.New(errs.TypeError, pos, "state identifiers must be int or string, got %s", v.Kind())
		}
	}
	return out, nil
}

func (ip *Interp) evalOf(n *ast.Of) (value.Value, error) {
	t, err := ip.eval(n.Target)
	if err != nil {
		return nil, err
	}
	var fa *automaton.NFA
	switch x := t.(type) {
	case value.FA:
		fa = x.Automaton
	case value.RSM:
		fa = x.R.Boxes[x.R.Start]
	default:
		return nil, typeErr(n.Target.Pos(), t, "FA", "RSM")
	}
	switch n.What {
	case ast.OfStartStates:
		return statesToSet(fa.StartStates()), nil
	case ast.OfFinalStates:
		return statesToSet(fa.FinalStates()), nil
	case ast.OfReachable:
		s := value.NewSet()
		for _, pair := range fa.ReachableStates() {
			s.Add(value.Str(pair[1].String()))
		}
		return s, nil
	case ast.OfNodes:
		return statesToSet(fa.States()), nil
	case ast.OfEdges:
		s := value.NewSet()
		for _, e := range fa.EdgeTriples() {
			s.Add(value.Tuple{value.Str(e.From.String()), value.Str(e.Sym.String()), value.Str(e.To.String())})
		}
		return s, nil
	case ast.OfLabels:
		s := value.NewSet()
		for _, sym := range fa.Alphabet() {
			s.Add(value.Str(sym.String()))
		}
		return s, nil
	default:
		return nil, errs.New(errs.NotImplemented, n.Position, "unknown 'of' accessor %q", n.What)
	}
}

func statesToSet(states []automaton.State) *value.Set {
	s := value.NewSet()
	for _, st := range states {
		s.Add(value.Str(st.String()))
	}
	return s
}

func (ip *Interp) evalMapFilter(n *ast.MapFilter) (value.Value, error) {
	tv, err := ip.eval(n.Target)
	if err != nil {
		return nil, err
	}
	set, ok := tv.(*value.Set)
	if !ok {
		return nil, typeErr(n.Target.Pos(), tv, "set")
	}
	lv, err := ip.eval(n.Lambda)
	if err != nil {
		return nil, err
	}
	lam, ok := lv.(value.Lambda)
	if !ok {
		return nil, typeErr(n.Lambda.Pos(), lv, "lambda")
	}
	out := value.NewSet()
	for _, elem := range set.Values() {
		res, err := ip.callLambda(n.Position, lam, elem)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case ast.KindMapped:
			if err := out.Add(res); err != nil {
				return nil, errs.Wrap(errs.TypeError, n.Position, err)
			}
		case ast.KindFiltered:
			b, ok := res.(value.Bool)
			if !ok {
				return nil, typeErr(n.Lambda.Pos(), res, "bool")
			}
			if b {
				if err := out.Add(elem); err != nil {
					return nil, errs.Wrap(errs.TypeError, n.Position, err)
				}
			}
		}
	}
	return out, nil
}

// callLambda invokes lam on arg, destructuring arg against the lambda's
// pattern per spec.md §4.6 (name binds or '_' discards; tuple pattern
// recurses requiring exact length match; mismatch is an ArityError).
func (ip *Interp) callLambda(callPos gql.Position, lam value.Lambda, arg value.Value) (value.Value, error) {
	frame := make(Frame, len(lam.Closure.(Frame))+1)
	for k, v := range lam.Closure.(Frame) {
		frame[k] = v
	}
	if err := bindPattern(frame, lam.Param, arg); err != nil {
		return nil, err
	}
	ip.stack.Push(frame)
	defer ip.stack.Pop()
	return ip.eval(lam.Body)
}

func bindPattern(frame Frame, p ast.Pattern, v value.Value) error {
	if p.IsTuple() {
		tup, ok := v.(value.Tuple)
		if !ok || len(tup) != len(p.Elems) {
			return errs.New(errs.ArityError, p.Position, "lambda pattern expects a %d-tuple, got %s", len(p.Elems), v.String())
		}
		for i, sub := range p.Elems {
			if err := bindPattern(frame, sub, tup[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if !p.IsDiscard() {
		frame[p.Name] = v
	}
	return nil
}
