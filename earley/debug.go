package earley

import (
	"bytes"
)

func dumpColumn(S *StateSet, n int) {
	if S == nil {
		return
	}
	tracer().Debugf("--- Column %04d ---- %v", n, S.Token())
	for i, s := range S.states {
		tracer().Debugf("[%2d] %s", i+1, s)
	}
}

// Dump is a debugging helper, writing all columns to the trace (level debug).
func (c *Chart) Dump() {
	for n, S := range c.columns {
		dumpColumn(S, n)
	}
	tracer().Debugf("--- %d states in %d columns ---", c.Size(), c.Len())
}

func stateSetString(states []*State) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, s := range states {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (S *StateSet) String() string {
	return stateSetString(S.states)
}
