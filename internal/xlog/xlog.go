// Package xlog wraps schuko's tracing facility the way runtime.T() and
// terexlang's tracer() do in the teacher module: a single package-level
// trace category that every other package calls through, so trace level
// can be set once (by the CLI) and observed everywhere.
package xlog

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func init() {
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = gologadapter.New()
	}
}

// T returns the trace sink used by the automaton, rsm, cfpq and interp
// packages for Debugf/Infof/Errorf calls. We reuse schuko's SyntaxTracer
// category rather than minting a new one, the way runtime.T() and
// terexlang's tracer() both do.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// SetLevel changes the trace level for the whole module; the CLI calls
// this from its -trace flag.
func SetLevel(l tracing.TraceLevel) {
	gtrace.SyntaxTracer.SetTraceLevel(l)
}
