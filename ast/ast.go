// Package ast defines the GQL abstract syntax tree produced by the parser
// and walked by the interpreter (spec.md §6). Every node carries its
// source Position so errors can be stamped per spec.md §4.7, following the
// position-carrying node idiom of terex.Token in
// terex/terexlang/terex.go.
package ast

import gql "github.com/gql-lang/cfpq"

// Program is a sequence of statements, the parser's top-level result.
type Program struct {
	Stmts []Stmt
}

// Stmt is one top-level statement: Let or Print.
type Stmt interface {
	isStmt()
	Pos() gql.Position
}

// Let binds Name to the value of Expr in the global scope.
type Let struct {
	Position gql.Position
	Name     string
	Expr     Expr
}

func (s *Let) isStmt()             {}
func (s *Let) Pos() gql.Position   { return s.Position }

// Print evaluates Expr and writes its printed form to the interpreter's
// output sink. GQL source may spell this 'print' or '>>>'.
type Print struct {
	Position gql.Position
	Expr     Expr
}

func (s *Print) isStmt()           {}
func (s *Print) Pos() gql.Position { return s.Position }

// ExprStmt evaluates Expr for its side effects (error propagation only;
// the value is discarded) — the 'print'-less form of spec.md §6's
// `('print'|'>>>')? expr ';'` statement.
type ExprStmt struct {
	Position gql.Position
	Expr     Expr
}

func (s *ExprStmt) isStmt()           {}
func (s *ExprStmt) Pos() gql.Position { return s.Position }

// Expr is any GQL expression node.
type Expr interface {
	isExpr()
	Pos() gql.Position
}

// Name is a bare identifier reference, looked up in the scope stack.
type Name struct {
	Position gql.Position
	Ident    string
}

func (e *Name) isExpr()           {}
func (e *Name) Pos() gql.Position { return e.Position }

// Rec is a first-class Nonterminal-reference literal ('rec' NAME); it
// never looks up a scope binding (spec.md §4.6). A bare NAME is always an
// ast.Name.
type Rec struct {
	Position gql.Position
	Ident    string
}

func (e *Rec) isExpr()           {}
func (e *Rec) Pos() gql.Position { return e.Position }

// IntLit is an integer literal.
type IntLit struct {
	Position gql.Position
	Value    int64
}

func (e *IntLit) isExpr()           {}
func (e *IntLit) Pos() gql.Position { return e.Position }

// RealLit is a floating-point literal.
type RealLit struct {
	Position gql.Position
	Value    float64
}

func (e *RealLit) isExpr()           {}
func (e *RealLit) Pos() gql.Position { return e.Position }

// StringLit is a string literal with escapes already resolved by the lexer.
type StringLit struct {
	Position gql.Position
	Value    string
}

func (e *StringLit) isExpr()           {}
func (e *StringLit) Pos() gql.Position { return e.Position }

// Range is the literal INT '..' INT, sugar understood by the interpreter
// (produces a Set of Int values).
type Range struct {
	Position gql.Position
	Lo, Hi   Expr
}

func (e *Range) isExpr()           {}
func (e *Range) Pos() gql.Position { return e.Position }

// SetLit is a literal '{' expr,* '}'.
type SetLit struct {
	Position gql.Position
	Elems    []Expr
}

func (e *SetLit) isExpr()           {}
func (e *SetLit) Pos() gql.Position { return e.Position }

// BinOp names a binary operator token (spec.md §6 BINOP / §4.6 table).
type BinOp string

const (
	OpMul   BinOp = "*"
	OpDiv   BinOp = "/"
	OpAnd2  BinOp = "&"
	OpAdd   BinOp = "+"
	OpSub   BinOp = "-"
	OpOr2   BinOp = "|"
	OpEq    BinOp = "=="
	OpNeq   BinOp = "!="
	OpLt    BinOp = "<"
	OpGt    BinOp = ">"
	OpLe    BinOp = "<="
	OpGe    BinOp = ">="
	OpIn    BinOp = "in"
	OpNotIn BinOp = "not in"
	OpAnd   BinOp = "and"
	OpOr    BinOp = "or"
)

// Binary is a binary-operator expression.
type Binary struct {
	Position gql.Position
	Op       BinOp
	Left     Expr
	Right    Expr
}

func (e *Binary) isExpr()           {}
func (e *Binary) Pos() gql.Position { return e.Position }

// UnaryOp names a unary operator: Kleene star is postfix, the rest prefix.
type UnaryOp string

const (
	OpNeg   UnaryOp = "-"
	OpNot   UnaryOp = "not"
	OpStar  UnaryOp = "*"
)

// Unary is a unary-operator expression; Postfix distinguishes the trailing
// Kleene-star form from the prefix '-'/'not' forms (both use the same node
// shape since both carry exactly one operand).
type Unary struct {
	Position gql.Position
	Op       UnaryOp
	Operand  Expr
	Postfix  bool
}

func (e *Unary) isExpr()           {}
func (e *Unary) Pos() gql.Position { return e.Position }

// WithClause names which state set a 'with' expression replaces/augments.
type WithClause string

const (
	ClauseOnlyStart      WithClause = "only start"
	ClauseOnlyFinal      WithClause = "only final"
	ClauseAdditionalStart WithClause = "additional start"
	ClauseAdditionalFinal WithClause = "additional final"
)

// With is 'X with CLAUSE states expr': builds a copy of X's automaton with
// its start/final set replaced or augmented (spec.md §4.6).
type With struct {
	Position gql.Position
	Target   Expr
	Clause   WithClause
	States   Expr
}

func (e *With) isExpr()           {}
func (e *With) Pos() gql.Position { return e.Position }

// OfWhat names the accessor kind of an 'of' expression.
type OfWhat string

const (
	OfStartStates OfWhat = "start states"
	OfFinalStates OfWhat = "final states"
	OfReachable   OfWhat = "reachable states"
	OfNodes       OfWhat = "nodes"
	OfEdges       OfWhat = "edges"
	OfLabels      OfWhat = "labels"
)

// Of is '(GET_WHAT states|nodes|edges|labels) of expr': an accessor on an
// FA or RSM value (spec.md §4.6).
type Of struct {
	Position gql.Position
	What     OfWhat
	Target   Expr
}

func (e *Of) isExpr()           {}
func (e *Of) Pos() gql.Position { return e.Position }

// MapFilterKind distinguishes 'mapped with' from 'filtered with'.
type MapFilterKind string

const (
	KindMapped   MapFilterKind = "mapped"
	KindFiltered MapFilterKind = "filtered"
)

// MapFilter is 'expr (mapped|filtered) with expr' over a Set value.
type MapFilter struct {
	Position gql.Position
	Kind     MapFilterKind
	Target   Expr
	Lambda   Expr
}

func (e *MapFilter) isExpr()           {}
func (e *MapFilter) Pos() gql.Position { return e.Position }

// Load is 'load STRING': loads a graph by file path or dataset name and
// lifts it to an FA over all its nodes (spec.md §6).
type Load struct {
	Position gql.Position
	Name     string
}

func (e *Load) isExpr()           {}
func (e *Load) Pos() gql.Position { return e.Position }

// Pattern is a lambda parameter pattern: a bare name (possibly '_') or a
// tuple of sub-patterns requiring exact length match (spec.md §4.6).
type Pattern struct {
	Position gql.Position
	Name     string   // set when this is a leaf pattern
	Elems    []Pattern // set (len>=2) when this is a tuple pattern
}

// IsTuple reports whether this pattern destructures a tuple.
func (p Pattern) IsTuple() bool { return len(p.Elems) > 0 }

// IsDiscard reports whether this leaf pattern is the wildcard '_'.
func (p Pattern) IsDiscard() bool { return !p.IsTuple() && p.Name == "_" }

// Lambda is '\ pattern -> expr', a single-parameter closure literal.
type Lambda struct {
	Position gql.Position
	Param    Pattern
	Body     Expr
}

func (e *Lambda) isExpr()           {}
func (e *Lambda) Pos() gql.Position { return e.Position }
