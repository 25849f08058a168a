// Package interp implements the GQL tree-walking evaluator described in
// spec.md §4.6: a scope stack (global frame plus one frame per active
// lambda call), the operator dispatch table of spec.md's §4.6 table, the
// `with`/`of`/`mapped`/`filtered`/`load`/`rec` builtin forms, and the
// single top-level error wrapper of spec.md §4.7 that stamps the
// current AST node's position onto any inner failure.
package interp

import (
	"fmt"
	"io"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/ast"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/graph"
	"github.com/gql-lang/cfpq/internal/xlog"
	"github.com/gql-lang/cfpq/rsm"
	"github.com/gql-lang/cfpq/value"
)

// Interp is one interpretation run: fresh scope stack, fresh load cache
// (spec.md §5: "A fresh interpreter starts with an empty cache").
type Interp struct {
	Out   io.Writer
	stack *Stack
	cache map[string]*automaton.NFA
}

// New returns an interpreter writing `print`ed values to out.
func New(out io.Writer) *Interp {
	return &Interp{
		Out:   out,
		stack: NewStack(),
		cache: make(map[string]*automaton.NFA),
	}
}

// Run evaluates every statement of prog in order. Per spec.md §7, the
// first error aborts the whole run; subsequent statements are not
// executed.
func (ip *Interp) Run(prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		if err := ip.execStmt(stmt); err != nil {
			return wrapPos(stmt.Pos(), err)
		}
	}
	return nil
}

func (ip *Interp) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Let:
		v, err := ip.eval(s.Expr)
		if err != nil {
			return err
		}
		ip.stack.Bind(s.Name, v)
		return nil
	case *ast.Print:
		v, err := ip.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(ip.Out, v.String())
		return nil
	case *ast.ExprStmt:
		_, err := ip.eval(s.Expr)
		return err
	default:
		return errs.New(errs.NotImplemented, stmt.Pos(), "unknown statement %T", stmt)
	}
}

// wrapPos is the single top-level wrapper of spec.md §4.7: it stamps pos
// onto err unless err already carries its own (more precise) position.
func wrapPos(pos gql.Position, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*errs.Error); ok {
		return e
	}
	return errs.New(errs.NotImplemented, pos, "%v", err)
}

func (ip *Interp) eval(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.RealLit:
		return value.Real(n.Value), nil
	case *ast.StringLit:
		return value.Str(n.Value), nil
	case *ast.Name:
		v, ok := ip.stack.Lookup(n.Ident)
		if !ok {
			return nil, errs.New(errs.NameError, n.Position, "unbound name %q", n.Ident)
		}
		return v, nil
	case *ast.Rec:
		return value.RSM{Name: n.Ident, R: rsm.Rec(automaton.Nonterminal(n.Ident))}, nil
	case *ast.Range:
		return ip.evalRange(n)
	case *ast.SetLit:
		return ip.evalSetLit(n)
	case *ast.Lambda:
		return value.Lambda{Param: n.Param, Body: n.Body, Closure: ip.stack.Snapshot()}, nil
	case *ast.Unary:
		return ip.evalUnary(n)
	case *ast.Binary:
		return ip.evalBinary(n)
	case *ast.With:
		return ip.evalWith(n)
	case *ast.Of:
		return ip.evalOf(n)
	case *ast.MapFilter:
		return ip.evalMapFilter(n)
	case *ast.Load:
		return ip.evalLoad(n)
	default:
		return nil, errs.New(errs.NotImplemented, e.Pos(), "unhandled expression %T", e)
	}
}

func (ip *Interp) evalRange(n *ast.Range) (value.Value, error) {
	lo, err := ip.eval(n.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := ip.eval(n.Hi)
	if err != nil {
		return nil, err
	}
	loI, ok := lo.(value.Int)
	if !ok {
		return nil, typeErr(n.Lo.Pos(), lo, "int")
	}
	hiI, ok := hi.(value.Int)
	if !ok {
		return nil, typeErr(n.Hi.Pos(), hi, "int")
	}
	s := value.NewSet()
	for i := int64(loI); i < int64(hiI); i++ {
		if err := s.Add(value.Int(i)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (ip *Interp) evalSetLit(n *ast.SetLit) (value.Value, error) {
	s := value.NewSet()
	for _, el := range n.Elems {
		v, err := ip.eval(el)
		if err != nil {
			return nil, err
		}
		if err := s.Add(v); err != nil {
			return nil, errs.Wrap(errs.TypeError, el.Pos(), err)
		}
	}
	return s, nil
}

func (ip *Interp) evalLoad(n *ast.Load) (value.Value, error) {
	if fa, ok := ip.cache[n.Name]; ok {
		return value.FA{Automaton: fa}, nil
	}
	g, err := ip.loadGraph(n.Name)
	if err != nil {
		return nil, errs.New(errs.LoaderError, n.Position, "could not load %q: %v", n.Name, err)
	}
	fa := automaton.FromGraph(g, nil, nil)
	ip.cache[n.Name] = fa
	xlog.T().Debugf("load: cached FA for %q (%d states)", n.Name, len(fa.States()))
	return value.FA{Automaton: fa}, nil
}

func (ip *Interp) loadGraph(name string) (*graph.Graph, error) {
	if g, err := graph.LoadCSV(name); err == nil {
		return g, nil
	}
	if g, ok := graph.Dataset(name); ok {
		return g, nil
	}
	return nil, fmt.Errorf("neither a readable CSV file nor a known dataset")
}

func typeErr(pos gql.Position, v value.Value, expected ...string) *errs.Error {
	return errs.New(errs.TypeError, pos, "value %s has type %s, expected %v", v.String(), v.Kind(), expected)
}
