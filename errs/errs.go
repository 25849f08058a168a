// Package errs implements the single ErrorKind taxonomy described in the
// language spec's error semantics: every failure that can reach a GQL
// program author carries a kind, a source position and a message, and
// nothing in the parser or interpreter ever panics over user input.
package errs

import (
	"errors"
	"fmt"

	gql "github.com/gql-lang/cfpq"
)

// Kind enumerates the error taxonomy. The zero Kind is never used.
type Kind int

const (
	_ Kind = iota
	ParseError
	NameError
	TypeError
	ArityError
	LoaderError
	GrammarError
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "Parsing error"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case ArityError:
		return "ArityError"
	case LoaderError:
		return "LoaderError"
	case GrammarError:
		return "GrammarError"
	case NotImplemented:
		return "NotImplemented"
	default:
		return "Error"
	}
}

// Error is the single error type produced by this module's front end and
// interpreter. It always carries a position, even when that position is
// gql.NoPosition (for errors raised before any token has been read).
type Error struct {
	Kind Kind
	Pos  gql.Position
	Msg  string
}

// New builds an Error, following fmt.Errorf's format/args convention.
func New(kind Kind, pos gql.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. Parse errors and runtime errors
// are rendered identically except for the leading word, matching the
// "Parsing error at LINE:COL: MSG" / "Runtime error at LINE:COL: MSG"
// contract; ParseError renders as "Parsing error at L:C: msg", every other
// kind as "<Kind> at L:C: msg". The CLI (cmd/gql) replaces the kind with
// "Runtime error" when it prints a non-parse error.
func (e *Error) Error() string {
	if e.Kind == ParseError {
		return fmt.Sprintf("Parsing error at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, &errs.Error{Kind: errs.TypeError}) matches by kind alone.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Wrap stamps pos onto err if err is not already an *Error, following the
// "single top-level wrapper" requirement from spec.md §4.7: inner failures
// (e.g. a Go stdlib error from the CSV loader) get promoted to the current
// AST node's position instead of leaking an un-positioned error.
func Wrap(kind Kind, pos gql.Position, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(kind, pos, "%s", err.Error())
}
