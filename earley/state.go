package earley

import (
	"fmt"
	"strings"

	"github.com/npillmayer/earleo"
)

// State is an Earley item: a (partial) derivation of a single alternative of a
// grammar rule, together with the input positions it spans.
//
//    Sum ➞ Sum • [+-] Product  (0…3)
//
// States link back to the states they have been derived from (provenance).
// These links form a shared, acyclic graph, which is walked backwards to
// construct parse trees.
type State struct {
	ruleID string
	lhs    string
	rhs    []string
	dot    int
	start  int // column where the derivation started
	end    int // column the state lives in
	prov   *backlink
	token  *earleo.Token // token the next symbol has been scanned with
	action earleo.Action
	leo    *leoLink // set for states created by a transitive completion
}

// backlink is a persistent list of antecedent states, latest first.
// Advancing a state shares the provenance of its predecessor.
type backlink struct {
	state *State
	next  *backlink
}

// stateKey identifies a state within a column.
type stateKey struct {
	ruleID string
	dot    int
	start  int
}

func (s *State) key() stateKey {
	return stateKey{ruleID: s.ruleID, dot: s.dot, start: s.start}
}

// RuleID returns the ID of the rule alternative of s.
func (s *State) RuleID() string { return s.ruleID }

// LHS returns the left hand side symbol of the rule of s.
func (s *State) LHS() string { return s.lhs }

// RHS returns the right hand side symbols of the rule alternative of s.
func (s *State) RHS() []string { return s.rhs }

// Dot returns the position of the dot within the right hand side.
func (s *State) Dot() int { return s.dot }

// Start returns the column where the derivation of s started.
func (s *State) Start() int { return s.start }

// End returns the column s belongs to.
func (s *State) End() int { return s.end }

// Token returns the token the symbol after the dot has been matched with, if any.
func (s *State) Token() *earleo.Token { return s.token }

// IsComplete is true if the dot is at the end of the right hand side.
func (s *State) IsComplete() bool {
	return s.dot == len(s.rhs)
}

// NextSymbol returns the symbol after the dot, or "" for complete states.
func (s *State) NextSymbol() string {
	if s.IsComplete() {
		return ""
	}
	return s.rhs[s.dot]
}

// Provenance returns the states s has been derived from, in order of derivation.
// For a scanned state, this is the state before the scan. For a state advanced
// over a non-terminal, these are the antecedents of the advanced state plus the
// completed state of the non-terminal.
func (s *State) Provenance() []*State {
	n := 0
	for l := s.backlinks(); l != nil; l = l.next {
		n++
	}
	states := make([]*State, n)
	for l := s.prov; l != nil; l = l.next {
		n--
		states[n] = l.state
	}
	return states
}

// backlinks returns the provenance list of s, latest first. States created by a
// transitive completion get their provenance re-created on first access.
func (s *State) backlinks() *backlink {
	if s.leo != nil && s.prov == nil {
		s.prov = s.leo.expand()
	}
	return s.prov
}

// isRightRecursive is true for complete states of rules A ➞ … A.
func (s *State) isRightRecursive() bool {
	return s.IsComplete() && s.dot > 0 && s.rhs[s.dot-1] == s.lhs
}

// advance creates a candidate state with the dot moved over completed.
func (s *State) advance(completed *State) *State {
	return &State{
		ruleID: s.ruleID,
		lhs:    s.lhs,
		rhs:    s.rhs,
		dot:    s.dot + 1,
		start:  s.start,
		end:    completed.end,
		prov:   &backlink{state: completed, next: s.prov},
		action: s.action,
	}
}

func (s *State) String() string {
	var b strings.Builder
	b.WriteString(s.lhs)
	b.WriteString(" ➞")
	for i, sym := range s.rhs {
		if i == s.dot {
			b.WriteString(" •")
		}
		b.WriteString(" " + sym)
	}
	if s.IsComplete() {
		b.WriteString(" •")
	}
	fmt.Fprintf(&b, "  (%d…%d)", s.start, s.end)
	return b.String()
}
