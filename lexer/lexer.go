// Package lexer tokenizes GQL source text using a lexmachine-generated
// scanner, following the pattern of terex/terexlang/scan.go and
// lr/scanner/lexmachine.go: token kinds are registered once, a DFA is
// compiled from a table of regexes, and Next() drives the compiled
// scanner one match at a time.
package lexer

import (
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/errs"
)

// Kind identifies a token's lexical class.
type Kind int

const (
	EOF Kind = iota
	IDENT
	INT
	REAL
	STRING

	// keywords
	LET
	PRINT
	WITH
	OF
	ONLY
	ADDITIONAL
	START
	FINAL
	STATES
	REACHABLE
	NODES
	EDGES
	LABELS
	MAPPED
	FILTERED
	LOAD
	REC
	IN
	AND
	OR
	NOT

	// punctuation / operators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMI
	ASSIGN
	STAR
	SLASH
	AMP
	PLUS
	MINUS
	PIPE
	EQ
	NEQ
	LT
	GT
	LE
	GE
	DOTDOT
	ARROW
	BACKSLASH
	PRINTARROW // '>>>'
)

var kindNames = map[Kind]string{
	EOF: "EOF", IDENT: "IDENT", INT: "INT", REAL: "REAL", STRING: "STRING",
	LET: "let", PRINT: "print", WITH: "with", OF: "of", ONLY: "only",
	ADDITIONAL: "additional", START: "start", FINAL: "final", STATES: "states",
	REACHABLE: "reachable", NODES: "nodes", EDGES: "edges", LABELS: "labels",
	MAPPED: "mapped", FILTERED: "filtered", LOAD: "load", REC: "rec",
	IN: "in", AND: "and", OR: "or", NOT: "not",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", COMMA: ",", SEMI: ";",
	ASSIGN: "=", STAR: "*", SLASH: "/", AMP: "&", PLUS: "+", MINUS: "-",
	PIPE: "|", EQ: "==", NEQ: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=",
	DOTDOT: "..", ARROW: "->", BACKSLASH: "\\", PRINTARROW: ">>>",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"let": LET, "print": PRINT, "with": WITH, "of": OF, "only": ONLY,
	"additional": ADDITIONAL, "start": START, "final": FINAL, "states": STATES,
	"reachable": REACHABLE, "nodes": NODES, "edges": EDGES, "labels": LABELS,
	"mapped": MAPPED, "filtered": FILTERED, "load": LOAD, "rec": REC,
	"in": IN, "and": AND, "or": OR, "not": NOT,
}

// Token is one lexed token: its kind, literal text, and source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    gql.Position
}

var lexerOnce sync.Once
var compiled *lexmachine.Lexer
var compileErr error

func action(k Kind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(k), string(m.Bytes), m), nil
	}
}

func buildLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()

	lx.Add([]byte(`//[^\n]*`), skip)
	// lexmachine's matcher is regex-based, so true nesting of /* */ is out
	// of reach; this matches from an opening /* to the first following */,
	// so block comments do not nest.
	lx.Add([]byte(`/\*([^*]|\*+[^*/])*\*+/`), skip)
	lx.Add([]byte(`( |\t|\n|\r)+`), skip)

	lx.Add([]byte(`>>>`), action(PRINTARROW))
	lx.Add([]byte(`\.\.`), action(DOTDOT))
	lx.Add([]byte(`->`), action(ARROW))
	lx.Add([]byte(`==`), action(EQ))
	lx.Add([]byte(`!=`), action(NEQ))
	lx.Add([]byte(`<=`), action(LE))
	lx.Add([]byte(`>=`), action(GE))

	lx.Add([]byte(`\(`), action(LPAREN))
	lx.Add([]byte(`\)`), action(RPAREN))
	lx.Add([]byte(`\{`), action(LBRACE))
	lx.Add([]byte(`\}`), action(RBRACE))
	lx.Add([]byte(`,`), action(COMMA))
	lx.Add([]byte(`;`), action(SEMI))
	lx.Add([]byte(`=`), action(ASSIGN))
	lx.Add([]byte(`\*`), action(STAR))
	lx.Add([]byte(`/`), action(SLASH))
	lx.Add([]byte(`&`), action(AMP))
	lx.Add([]byte(`\+`), action(PLUS))
	lx.Add([]byte(`\-`), action(MINUS))
	lx.Add([]byte(`\|`), action(PIPE))
	lx.Add([]byte(`<`), action(LT))
	lx.Add([]byte(`>`), action(GT))
	lx.Add([]byte(`\\`), action(BACKSLASH))

	lx.Add([]byte(`\"(\\.|[^"\\])*\"`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(STRING), unescape(string(m.Bytes)), m), nil
	})

	lx.Add([]byte(`[0-9]+\.[0-9]+([eE][+\-]?[0-9]+)?`), action(REAL))
	lx.Add([]byte(`[0-9]+[eE][+\-]?[0-9]+`), action(REAL))
	lx.Add([]byte(`(0|[1-9][0-9]*)`), action(INT))

	lx.Add([]byte(`([a-zA-Z_])([a-zA-Z0-9_])*`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		text := string(m.Bytes)
		if kw, ok := keywords[text]; ok {
			return s.Token(int(kw), text, m), nil
		}
		return s.Token(int(IDENT), text, m), nil
	})

	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// unescape resolves \" and \\ escapes inside a GQL string literal, and
// strips the surrounding quotes.
func unescape(raw string) string {
	inner := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, inner[i])
			}
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}

// Lexer tokenizes a single GQL source string on demand.
type Lexer struct {
	scanner *lexmachine.Scanner
	src     string
}

// New compiles the shared lexmachine DFA (once per process) and returns a
// fresh scanner over src.
func New(src string) (*Lexer, error) {
	lexerOnce.Do(func() {
		compiled, compileErr = buildLexer()
	})
	if compileErr != nil {
		return nil, compileErr
	}
	s, err := compiled.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	return &Lexer{scanner: s, src: src}, nil
}

// Next returns the next token, or a Token{Kind: EOF} at end of input.
// Unconsumable input raises errs.ParseError, per spec.md §6/§7's strict
// "abort on first error" policy.
func (l *Lexer) Next() (Token, error) {
	tok, err, eof := l.scanner.Next()
	if err != nil {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			pos := gql.Position{Line: ui.StartLine, Col: ui.StartColumn}
			return Token{}, errs.New(errs.ParseError, pos, "unrecognized input %q", l.src[ui.StartTC:ui.FailTC])
		}
		return Token{}, errs.New(errs.ParseError, gql.NoPosition, "%v", err)
	}
	if eof {
		return Token{Kind: EOF}, nil
	}
	t := tok.(*lexmachine.Token)
	return Token{
		Kind:   Kind(t.Type),
		Lexeme: string(t.Lexeme),
		Pos:    gql.Position{Line: t.StartLine, Col: t.StartColumn},
	}, nil
}
