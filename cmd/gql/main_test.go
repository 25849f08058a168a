package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/interp"
)

func TestRenderRuntimeErrorUsesRuntimeErrorPrefix(t *testing.T) {
	err := errs.New(errs.TypeError, gql.Position{Line: 3, Col: 4}, "bad value")
	assert.Equal(t, "Runtime error at 3:4: bad value", renderRuntimeError(err))
}

func TestRenderParseErrorKeepsParsingErrorWording(t *testing.T) {
	err := errs.New(errs.ParseError, gql.Position{Line: 1, Col: 1}, "unexpected token")
	assert.Equal(t, "Parsing error at 1:1: unexpected token", renderParseError(err))
}

func TestLoadInitRunsEachStatementInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.gql")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;\nprint x;\n"), 0o644))

	var out bytes.Buffer
	ip := interp.New(&out)
	require.NoError(t, loadInit(ip, path))
	assert.Equal(t, "1\n", out.String())
}
