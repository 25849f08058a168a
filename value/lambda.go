package value

import "github.com/gql-lang/cfpq/ast"

// Env is the minimal view of a scope a Lambda's closure needs: name
// resolution at call time against the snapshot captured when the lambda
// literal was evaluated (spec.md §4.6: "closure captures a SNAPSHOT of the
// current scope"). The interp package's scope stack implements this
// interface; value stays independent of interp to avoid an import cycle.
type Env interface {
	Lookup(name string) (Value, bool)
}

// Lambda is a single-parameter closure value: a structural pattern, a body
// expression, and the captured environment.
type Lambda struct {
	Param   ast.Pattern
	Body    ast.Expr
	Closure Env
}

func (Lambda) isValue()    {}
func (Lambda) Kind() Kind  { return KindLambda }
func (Lambda) String() string { return "<lambda>" }
