package earley

import "github.com/npillmayer/earleo"

// Chart is the sequence of state sets of a parse, one column per input position.
// Columns are appended at the tail only. The chart remembers the states of
// column 0 ("seed") to be able to reset itself for a new parse.
type Chart struct {
	columns []*StateSet
	seed    []*State
}

// NewChart creates an empty chart.
func NewChart() *Chart {
	return &Chart{}
}

// Seed stores a copy of states as column 0 and as the template for Reset.
func (c *Chart) Seed(states []*State) {
	c.seed = make([]*State, len(states))
	for i, s := range states {
		c.seed[i] = pristine(s)
	}
	c.Reset()
}

// Reset clears all columns and re-creates column 0 from the seed.
func (c *Chart) Reset() {
	c.columns = c.columns[:0]
	S := c.AppendColumn()
	for _, s := range c.seed {
		S.Add(pristine(s))
	}
}

func pristine(s *State) *State {
	cp := *s
	cp.prov, cp.token, cp.leo = nil, nil, nil
	return &cp
}

// AppendColumn adds an empty column at the tail of the chart.
func (c *Chart) AppendColumn() *StateSet {
	S := newStateSet()
	c.columns = append(c.columns, S)
	return S
}

// Column returns column i, or nil if it does not exist.
func (c *Chart) Column(i int) *StateSet {
	if i < 0 || i >= len(c.columns) {
		return nil
	}
	return c.columns[i]
}

// ColumnAt returns column i, appending columns as needed.
func (c *Chart) ColumnAt(i int) *StateSet {
	for len(c.columns) <= i {
		c.AppendColumn()
	}
	return c.columns[i]
}

// Len returns the number of columns.
func (c *Chart) Len() int {
	return len(c.columns)
}

// LastColumn returns the column at the tail of the chart.
func (c *Chart) LastColumn() *StateSet {
	return c.Column(len(c.columns) - 1)
}

// Size returns the number of states over all columns.
func (c *Chart) Size() int {
	n := 0
	for _, S := range c.columns {
		n += S.Len()
	}
	return n
}

// Insert adds a candidate state to the column it ends in. It returns nil if
// an equivalent state already exists.
func (c *Chart) Insert(candidate *State) *State {
	return c.ColumnAt(candidate.end).Add(candidate)
}

// Advance moves the dot of waiting over the non-terminal derived by completed
// and inserts the result into the column completed ends in.
func (c *Chart) Advance(waiting *State, completed *State) *State {
	return c.Insert(waiting.advance(completed))
}

// Scan moves the dot of waiting over a terminal matched by tok and inserts the
// result into the next column, creating it if necessary. The token is recorded
// with waiting.
func (c *Chart) Scan(waiting *State, tok *earleo.Token) *State {
	waiting.token = tok
	next := c.ColumnAt(waiting.end + 1)
	next.token = tok
	return next.Add(&State{
		ruleID: waiting.ruleID,
		lhs:    waiting.lhs,
		rhs:    waiting.rhs,
		dot:    waiting.dot + 1,
		start:  waiting.start,
		end:    waiting.end + 1,
		prov:   &backlink{state: waiting},
		action: waiting.action,
	})
}

// truncate drops all columns after column and forgets the tokens scanned
// from it.
func (c *Chart) truncate(column int) {
	if column+1 < len(c.columns) {
		for i := column + 1; i < len(c.columns); i++ {
			c.columns[i] = nil
		}
		c.columns = c.columns[:column+1]
	}
	if S := c.Column(column); S != nil {
		for _, s := range S.states {
			s.token = nil
		}
	}
}
