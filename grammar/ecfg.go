package grammar

import (
	"bufio"
	"strings"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/errs"
)

// ECFG is an Extended CFG: exactly one regex rule per nonterminal,
// spec.md §4.4's line-oriented textual format ("N -> R" per non-empty
// line). The first LHS encountered is the start symbol.
type ECFG struct {
	Start automaton.Nonterminal
	Rules map[automaton.Nonterminal]string // raw regex text, compiled lazily by ToRSM
	order []automaton.Nonterminal
}

// ParseECFG parses the line-oriented ECFG textual format. Each
// nonterminal may appear on the LHS of at most one line; a duplicate LHS
// is a GrammarError, as is an empty LHS or a malformed line (spec.md
// §4.4, ErrorKind GrammarError).
func ParseECFG(src string) (*ECFG, error) {
	e := &ECFG{Rules: make(map[automaton.Nonterminal]string)}
	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		idx := strings.Index(line, "->")
		if idx < 0 {
			return nil, errs.New(errs.GrammarError, gql.Position{Line: lineNo}, "malformed ECFG line (missing '->'): %q", line)
		}
		lhs := strings.TrimSpace(line[:idx])
		rhs := strings.TrimSpace(line[idx+2:])
		if lhs == "" {
			return nil, errs.New(errs.GrammarError, gql.Position{Line: lineNo}, "empty left-hand side")
		}
		nt := automaton.Nonterminal(lhs)
		if _, dup := e.Rules[nt]; dup {
			return nil, errs.New(errs.GrammarError, gql.Position{Line: lineNo}, "duplicate rule for nonterminal %q", lhs)
		}
		e.Rules[nt] = rhs
		e.order = append(e.order, nt)
		if e.Start == "" {
			e.Start = nt
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.GrammarError, gql.NoPosition, err)
	}
	if len(e.Rules) == 0 {
		return nil, errs.New(errs.GrammarError, gql.NoPosition, "empty ECFG")
	}
	return e, nil
}

// ToRSM compiles each rule's regex to an NFA, then relabels every
// transition whose terminal symbol names another LHS as a Nonterminal
// token reference, following spec.md §4.4's compile step. The result's
// box set is exactly e's rule set.
func (e *ECFG) ToRSM() (*automaton.NFA, map[automaton.Nonterminal]*automaton.NFA, automaton.Nonterminal, error) {
	boxes := make(map[automaton.Nonterminal]*automaton.NFA, len(e.Rules))
	for _, nt := range e.order {
		re, err := automaton.ParseRegex(e.Rules[nt])
		if err != nil {
			return nil, nil, "", errs.New(errs.GrammarError, gql.NoPosition, "regex for %q: %s", nt, err)
		}
		fa := automaton.CompileRegex(re)
		boxes[nt] = relabelNonterminals(fa, e.Rules)
	}
	return boxes[e.Start], boxes, e.Start, nil
}

// relabelNonterminals rewrites every Terminal(x) transition where x is a
// known LHS name into a Nonterminal(x) transition, leaving all other
// transitions untouched.
func relabelNonterminals(fa *automaton.NFA, rules map[automaton.Nonterminal]string) *automaton.NFA {
	out := automaton.New()
	for _, s := range fa.States() {
		out.AddState(s)
	}
	for _, s := range fa.StartStates() {
		out.SetStart(s)
	}
	for _, s := range fa.FinalStates() {
		out.SetFinal(s)
	}
	for _, t := range fa.EdgeTriples() {
		sym := t.Sym
		if term, ok := sym.(automaton.Terminal); ok {
			if _, isNT := rules[automaton.Nonterminal(term)]; isNT {
				sym = automaton.Nonterminal(term)
			}
		}
		out.AddTransition(t.From, sym, t.To)
	}
	for _, e := range fa.EpsilonEdges() {
		out.AddEpsilon(e[0], e[1])
	}
	return out
}
