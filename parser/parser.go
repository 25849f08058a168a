// Package parser implements a hand-written precedence-climbing (Pratt)
// parser for the GQL surface grammar of spec.md §6, built directly over
// the lexer package. The binding-power table and the left/right-denotation
// split follow the nud/led shape of dekarrin-tunaq's
// internal/tunascript/parser.go, adapted from its token-method dispatch to
// an explicit switch because GQL's grammar is small and unambiguous enough
// not to need per-token nud/led methods.
package parser

import (
	"github.com/gql-lang/cfpq/ast"
	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/lexer"
)

// Parser holds the full token stream for one source text (GQL programs are
// small; there is no benefit to a streaming tokenizer here).
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse lexes and parses a complete GQL program (spec.md §6's `program :=
// stmt*`). Every syntax error aborts parsing immediately, per spec.md §7's
// "no skip-and-continue" policy.
func Parse(src string) (*ast.Program, error) {
	lx, err := lexer.New(src)
	if err != nil {
		return nil, err
	}
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	t := p.cur()
	if t.Kind != k {
		return t, errs.New(errs.ParseError, t.Pos, "expected %s, got %q", k, t.Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur().Kind != lexer.EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.LET:
		pos := p.advance().Pos
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.Let{Position: pos, Name: name.Lexeme, Expr: e}, nil
	case lexer.PRINT, lexer.PRINTARROW:
		pos := p.advance().Pos
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.Print{Position: pos, Expr: e}, nil
	default:
		pos := p.cur().Pos
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Position: pos, Expr: e}, nil
	}
}

// Binding powers, low to high. `with`/`mapped`/`filtered` bind loosest of
// all infix forms (spec.md §6 lists them as alternative expr productions
// rather than BINOP entries, so they are given the loosest possible
// precedence rather than invented a position among the arithmetic tiers).
const (
	bpNone = iota
	bpWithOf
	bpOr
	bpAnd
	bpCompareIn
	bpBitOr
	bpBitAnd
	bpAdd
	bpMul
)

func infixBp(k lexer.Kind) int {
	switch k {
	case lexer.WITH, lexer.MAPPED, lexer.FILTERED:
		return bpWithOf
	case lexer.OR:
		return bpOr
	case lexer.AND:
		return bpAnd
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.IN, lexer.NOT:
		return bpCompareIn
	case lexer.PIPE:
		return bpBitOr
	case lexer.AMP:
		return bpBitAnd
	case lexer.PLUS, lexer.MINUS:
		return bpAdd
	case lexer.STAR, lexer.SLASH:
		return bpMul
	default:
		return bpNone
	}
}

func (p *Parser) parseExpr(minBp int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		k := p.cur().Kind
		bp := infixBp(k)
		if bp <= minBp {
			return left, nil
		}
		switch k {
		case lexer.WITH:
			left, err = p.parseWith(left)
		case lexer.MAPPED, lexer.FILTERED:
			left, err = p.parseMapFilter(left)
		case lexer.NOT:
			left, err = p.parseNotIn(left)
		case lexer.IN:
			pos := p.advance().Pos
			right, e2 := p.parseExpr(bp)
			err = e2
			left = &ast.Binary{Position: pos, Op: ast.OpIn, Left: left, Right: right}
		default:
			left, err = p.parseBinaryTail(left, k, bp)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseBinaryTail(left ast.Expr, k lexer.Kind, bp int) (ast.Expr, error) {
	pos := p.advance().Pos
	right, err := p.parseExpr(bp)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Position: pos, Op: binOpFor(k), Left: left, Right: right}, nil
}

func binOpFor(k lexer.Kind) ast.BinOp {
	switch k {
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	case lexer.AMP:
		return ast.OpAnd2
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.PIPE:
		return ast.OpOr2
	case lexer.EQ:
		return ast.OpEq
	case lexer.NEQ:
		return ast.OpNeq
	case lexer.LT:
		return ast.OpLt
	case lexer.GT:
		return ast.OpGt
	case lexer.LE:
		return ast.OpLe
	case lexer.GE:
		return ast.OpGe
	case lexer.AND:
		return ast.OpAnd
	case lexer.OR:
		return ast.OpOr
	}
	return ""
}

// parseNotIn handles 'expr not in expr', the one BINOP that is two keyword
// tokens (spec.md §6: `expr 'not' 'in' expr`).
func (p *Parser) parseNotIn(left ast.Expr) (ast.Expr, error) {
	pos := p.advance().Pos
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	right, err := p.parseExpr(bpCompareIn)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Position: pos, Op: ast.OpNotIn, Left: left, Right: right}, nil
}

// parseWith handles 'expr with CLAUSE states expr' (spec.md §4.6).
func (p *Parser) parseWith(left ast.Expr) (ast.Expr, error) {
	pos := p.advance().Pos
	clause := ast.ClauseAdditionalStart // default when CLAUSE is ε ("start states" / "final states")
	switch p.cur().Kind {
	case lexer.ONLY:
		p.advance()
		clause = p.parseWhichStates(ast.ClauseOnlyStart, ast.ClauseOnlyFinal)
	case lexer.ADDITIONAL:
		p.advance()
		clause = p.parseWhichStates(ast.ClauseAdditionalStart, ast.ClauseAdditionalFinal)
	case lexer.START:
		clause = ast.ClauseAdditionalStart
	case lexer.FINAL:
		clause = ast.ClauseAdditionalFinal
	default:
		return nil, errs.New(errs.ParseError, p.cur().Pos, "expected 'start'/'final' after 'with', got %q", p.cur().Lexeme)
	}
	if err := p.expectStartOrFinalKeyword(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.STATES); err != nil {
		return nil, err
	}
	states, err := p.parseExpr(bpWithOf)
	if err != nil {
		return nil, err
	}
	return &ast.With{Position: pos, Target: left, Clause: clause, States: states}, nil
}

func (p *Parser) parseWhichStates(startClause, finalClause ast.WithClause) ast.WithClause {
	if p.cur().Kind == lexer.FINAL {
		return finalClause
	}
	return startClause
}

func (p *Parser) expectStartOrFinalKeyword() error {
	if p.cur().Kind != lexer.START && p.cur().Kind != lexer.FINAL {
		return errs.New(errs.ParseError, p.cur().Pos, "expected 'start' or 'final', got %q", p.cur().Lexeme)
	}
	p.advance()
	return nil
}

// parseMapFilter handles 'expr (mapped|filtered) with expr' (spec.md §4.6).
func (p *Parser) parseMapFilter(left ast.Expr) (ast.Expr, error) {
	tok := p.advance()
	kind := ast.KindMapped
	if tok.Kind == lexer.FILTERED {
		kind = ast.KindFiltered
	}
	if _, err := p.expect(lexer.WITH); err != nil {
		return nil, err
	}
	lam, err := p.parseExpr(bpWithOf)
	if err != nil {
		return nil, err
	}
	return &ast.MapFilter{Position: tok.Pos, Kind: kind, Target: left, Lambda: lam}, nil
}

// canStartExpr reports whether k can begin a primary expression, used to
// disambiguate the postfix Kleene star from binary multiplication when
// both share the STAR token (spec.md §6 lists both as alternatives without
// a distinguishing lexeme).
func canStartExpr(k lexer.Kind) bool {
	switch k {
	case lexer.LPAREN, lexer.LBRACE, lexer.BACKSLASH, lexer.LOAD, lexer.REC,
		lexer.IDENT, lexer.INT, lexer.REAL, lexer.STRING,
		lexer.MINUS, lexer.NOT,
		lexer.START, lexer.FINAL, lexer.REACHABLE, lexer.NODES, lexer.EDGES, lexer.LABELS:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.MINUS:
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: pos, Op: ast.OpNeg, Operand: operand}, nil
	case lexer.NOT:
		// 'not' binds looser than comparisons/arithmetic but tighter than
		// 'and'/'or', matching the conventional logical-negation
		// precedence the grammar's flat BNF leaves unspecified.
		pos := p.advance().Pos
		operand, err := p.parseExpr(bpAnd)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: pos, Op: ast.OpNot, Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.STAR && !canStartExpr(p.peekAt(1).Kind) {
		pos := p.advance().Pos
		left = &ast.Unary{Position: pos, Op: ast.OpStar, Operand: left, Postfix: true}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Position: t.Pos, Value: t.Lexeme}, nil
	case lexer.INT:
		return p.parseIntOrRange()
	case lexer.REAL:
		p.advance()
		return &ast.RealLit{Position: t.Pos, Value: parseFloat(t.Lexeme)}, nil
	case lexer.LBRACE:
		return p.parseSetLit()
	case lexer.BACKSLASH:
		return p.parseLambda()
	case lexer.LOAD:
		p.advance()
		name, err := p.expect(lexer.STRING)
		if err != nil {
			return nil, err
		}
		return &ast.Load{Position: t.Pos, Name: name.Lexeme}, nil
	case lexer.REC:
		p.advance()
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.Rec{Position: t.Pos, Ident: name.Lexeme}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.Name{Position: t.Pos, Ident: t.Lexeme}, nil
	case lexer.START, lexer.FINAL, lexer.REACHABLE, lexer.NODES, lexer.EDGES, lexer.LABELS:
		return p.parseOf()
	default:
		return nil, errs.New(errs.ParseError, t.Pos, "unexpected token %q", t.Lexeme)
	}
}

func (p *Parser) parseIntOrRange() (ast.Expr, error) {
	t := p.advance()
	lo := &ast.IntLit{Position: t.Pos, Value: parseInt(t.Lexeme)}
	if p.cur().Kind != lexer.DOTDOT {
		return lo, nil
	}
	pos := p.advance().Pos
	hiTok, err := p.expect(lexer.INT)
	if err != nil {
		return nil, err
	}
	hi := &ast.IntLit{Position: hiTok.Pos, Value: parseInt(hiTok.Lexeme)}
	return &ast.Range{Position: pos, Lo: lo, Hi: hi}, nil
}

func (p *Parser) parseSetLit() (ast.Expr, error) {
	pos := p.advance().Pos
	var elems []ast.Expr
	for p.cur().Kind != lexer.RBRACE {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Kind == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.SetLit{Position: pos, Elems: elems}, nil
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	pos := p.advance().Pos
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	// Bound at bpWithOf rather than 0: a following 'with'/'mapped
	// with'/'filtered with' belongs to the enclosing expression, not to
	// this lambda's body (e.g. `A filtered with \x -> x != 1 mapped with
	// \x -> x+1` must parse as `(A filtered with L1) mapped with L2`, not
	// swallow the outer 'mapped with' into L1's body).
	body, err := p.parseExpr(bpWithOf)
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Position: pos, Param: pat, Body: body}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	t := p.cur()
	if t.Kind == lexer.IDENT {
		p.advance()
		return ast.Pattern{Position: t.Pos, Name: t.Lexeme}, nil
	}
	if t.Kind != lexer.LPAREN {
		return ast.Pattern{}, errs.New(errs.ParseError, t.Pos, "expected pattern, got %q", t.Lexeme)
	}
	p.advance()
	var elems []ast.Pattern
	for {
		sub, err := p.parsePattern()
		if err != nil {
			return ast.Pattern{}, err
		}
		elems = append(elems, sub)
		if p.cur().Kind == lexer.COMMA {
			p.advance()
			if p.cur().Kind == lexer.RPAREN {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return ast.Pattern{}, err
	}
	if len(elems) < 2 {
		return ast.Pattern{}, errs.New(errs.ParseError, t.Pos, "tuple pattern needs at least two elements")
	}
	return ast.Pattern{Position: t.Pos, Elems: elems}, nil
}

// parseOf handles '(GET_WHAT states|nodes|edges|labels) of expr' (spec.md §6).
func (p *Parser) parseOf() (ast.Expr, error) {
	t := p.advance()
	var what ast.OfWhat
	switch t.Kind {
	case lexer.START:
		if _, err := p.expect(lexer.STATES); err != nil {
			return nil, err
		}
		what = ast.OfStartStates
	case lexer.FINAL:
		if _, err := p.expect(lexer.STATES); err != nil {
			return nil, err
		}
		what = ast.OfFinalStates
	case lexer.REACHABLE:
		if _, err := p.expect(lexer.STATES); err != nil {
			return nil, err
		}
		what = ast.OfReachable
	case lexer.NODES:
		what = ast.OfNodes
	case lexer.EDGES:
		what = ast.OfEdges
	case lexer.LABELS:
		what = ast.OfLabels
	}
	if _, err := p.expect(lexer.OF); err != nil {
		return nil, err
	}
	target, err := p.parseExpr(bpWithOf)
	if err != nil {
		return nil, err
	}
	return &ast.Of{Position: t.Pos, What: what, Target: target}, nil
}
