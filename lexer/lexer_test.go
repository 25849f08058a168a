package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lx, err := New(src)
	require.NoError(t, err)
	var out []Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	toks := lexAll(t, `let a = "test"; >>> a; print a;`)
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{
		LET, IDENT, ASSIGN, STRING, SEMI,
		PRINTARROW, IDENT, SEMI,
		PRINT, IDENT, SEMI,
		EOF,
	}, kinds)
	assert.Equal(t, "test", toks[3].Lexeme)
}

func TestLexNumbersAndOperators(t *testing.T) {
	toks := lexAll(t, `0..3 1.5e-2 <= != -> ..`)
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{INT, DOTDOT, INT, REAL, LE, NEQ, ARROW, DOTDOT, EOF}, kinds)
}

func TestLexCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "let a = 1; // trailing\n/* block\ncomment */ print a;")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{LET, IDENT, ASSIGN, INT, SEMI, PRINT, IDENT, SEMI, EOF}, kinds)
}

func TestLexStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\"b"`)
	require.Len(t, toks, 2)
	assert.Equal(t, `a"b`, toks[0].Lexeme)
}

func TestLexIdentifierVsKeyword(t *testing.T) {
	toks := lexAll(t, "with_x with")
	require.Len(t, toks, 3)
	assert.Equal(t, IDENT, toks[0].Kind)
	assert.Equal(t, WITH, toks[1].Kind)
}
