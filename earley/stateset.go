package earley

import "github.com/npillmayer/earleo"

// StateSet is a column of the chart: a deduplicated, insertion-ordered set of
// states. Iteration order is insertion order; states added while a column is
// being processed will be visited in the same pass.
type StateSet struct {
	states []*State
	keys   map[stateKey]*State
	token  *earleo.Token       // token which has been consumed to reach this column
	nulled map[string][]*State // empty completions, by left hand side
}

func newStateSet() *StateSet {
	return &StateSet{keys: make(map[stateKey]*State)}
}

// Add inserts a candidate state, if no state with the same rule, dot position and
// start column is already present. It returns the inserted state, or nil for
// duplicates. Duplicates are rejected without merging their provenance.
func (S *StateSet) Add(candidate *State) *State {
	k := candidate.key()
	if _, exists := S.keys[k]; exists {
		return nil
	}
	S.keys[k] = candidate
	S.states = append(S.states, candidate)
	if candidate.IsComplete() && candidate.start == candidate.end {
		if S.nulled == nil {
			S.nulled = make(map[string][]*State)
		}
		S.nulled[candidate.lhs] = append(S.nulled[candidate.lhs], candidate)
	}
	return candidate
}

// Lookup finds the state for a rule alternative, dot position and start column.
func (S *StateSet) Lookup(ruleID string, dot int, start int) *State {
	return S.keys[stateKey{ruleID: ruleID, dot: dot, start: start}]
}

// Len returns the number of states in S.
func (S *StateSet) Len() int {
	return len(S.states)
}

// At returns the i-th state in order of insertion.
func (S *StateSet) At(i int) *State {
	return S.states[i]
}

// States returns all states in order of insertion.
func (S *StateSet) States() []*State {
	return S.states
}

// Token returns the token which has been consumed to reach this column.
// It is nil for column 0.
func (S *StateSet) Token() *earleo.Token {
	return S.token
}

// nullCompletions returns the states which derived lhs as the empty string
// within this column.
func (S *StateSet) nullCompletions(lhs string) []*State {
	return S.nulled[lhs]
}
