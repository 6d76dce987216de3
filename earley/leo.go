package earley

// Transitive items (Leo 1991).
//
// A complete right-recursive state A ➞ α A • (j) has to be propagated to all
// states waiting for A in column j. If there is exactly one such state, and it
// is A ➞ α • A (k) of the same rule, completing it yields A ➞ α A • (k), which
// in turn has to be propagated to column k, and so on. For n repetitions of a
// right-recursive rule, each column would repeat this chain, producing O(n²)
// states.
//
// Instead, we remember the deterministic chain as a reductionPath per
// (rule, dot, start column) and insert only the topmost result of the chain.
// The intermediate states are re-created on demand when a parse tree is built.

// leoKey identifies a reduction path.
type leoKey struct {
	ruleID string
	dot    int
	start  int
}

// reductionPath is one step in a deterministic chain of completions: the single
// state waiting in the start column of a right-recursive completion.
type reductionPath struct {
	waiting *State
	up      *reductionPath // step for the start column of waiting, may be nil
	top     *reductionPath // topmost step of the chain
}

// leoLink is the provenance of a state created from a reduction path.
type leoLink struct {
	path      *reductionPath
	completed *State
}

// expand re-creates the intermediate states between the bottom of a chain and
// its topmost state, returning the provenance of the topmost state.
func (l *leoLink) expand() *backlink {
	v := l.completed
	p := l.path
	for ; p.up != nil; p = p.up {
		v = p.waiting.advance(v)
	}
	return &backlink{state: v, next: p.waiting.prov}
}

type leoCache map[leoKey]*reductionPath

// forget drops all reduction paths for start columns after column.
func (lc leoCache) forget(column int) {
	for k := range lc {
		if k.start > column {
			delete(lc, k)
		}
	}
}

// leoComplete tries to complete a right-recursive state s along a reduction path.
// It returns false if no deterministic reduction path exists.
func (p *Parser) leoComplete(s *State) bool {
	key := leoKey{ruleID: s.ruleID, dot: s.dot, start: s.start}
	path, ok := p.leo[key]
	if !ok {
		f := p.deterministicPredecessor(s)
		if f == nil {
			return false
		}
		path = &reductionPath{
			waiting: f,
			up:      p.leo[leoKey{ruleID: s.ruleID, dot: s.dot, start: f.start}],
		}
		path.top = path
		if path.up != nil {
			path.top = path.up.top
		}
		p.leo[key] = path
		tracer().Debugf("transitive item for %s at %d", s.lhs, s.start)
	}
	if path.up == nil {
		p.chart.Advance(path.waiting, s)
		return true
	}
	top := path.top.waiting
	p.chart.Insert(&State{
		ruleID: top.ruleID,
		lhs:    top.lhs,
		rhs:    top.rhs,
		dot:    top.dot + 1,
		start:  top.start,
		end:    s.end,
		action: top.action,
		leo:    &leoLink{path: path, completed: s},
	})
	return true
}

// deterministicPredecessor returns the single state waiting for s.lhs in the start
// column of s, if it is A ➞ α • A of the same rule as s. Otherwise it returns nil.
func (p *Parser) deterministicPredecessor(s *State) *State {
	from := p.chart.Column(s.start)
	var found *State
	for i := 0; i < from.Len(); i++ {
		f := from.At(i)
		if f.NextSymbol() != s.lhs {
			continue
		}
		if found != nil {
			return nil // ambiguous
		}
		found = f
	}
	if found == nil || found.ruleID != s.ruleID || found.dot != len(found.rhs)-1 {
		return nil
	}
	return found
}
