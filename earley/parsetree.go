package earley

import (
	"fmt"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/schuko/gconf"
)

/*
Walk backwards over the provenance of Earley states.

A good overview of how to construct a parse forest from Earley-items may be found in
"Parsing Techniques" by  Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 7.2.1.2.

For an accepted state like

    Sum ➞ Sum [+-] Product •  (0…9)

the parser has recorded which states it has been derived from: a completed Product
ending in column 9, the state Sum ➞ Sum • [+-] Product which scanned a token, and a
completed Sum starting in column 0. We never have to search the chart for
candidates; following the links from right to left yields the children of a
node in reverse order. A completed child is walked recursively, a scanning state
produces a leaf for the token it has scanned and continues with its own links.

Input positions of nodes are computed from the tokens at the leaves. Nodes
deriving the empty string start and end at the position of the next token to
their right.
*/

// TreeBuilder creates parse trees from accepted states. The usual way to get
// parse trees is by calling Parser.Parse, which uses a TreeBuilder internally.
type TreeBuilder struct {
	end int // input position behind the last token
	pos int // leftmost input position visited so far
}

// NewTreeBuilder creates a tree builder for an input ending at inputEnd.
func NewTreeBuilder(inputEnd int) *TreeBuilder {
	return &TreeBuilder{end: inputEnd, pos: inputEnd}
}

// Build creates the parse tree for a completed state, applying semantic actions
// bottom up. If the action of the root splices more than one node, Build wraps
// them into a node typed by the left hand side of s. If the root is dropped,
// Build returns nil.
func (tb *TreeBuilder) Build(s *State) *earleo.Node {
	tb.pos = tb.end
	r, span := tb.reduce(s)
	nodes := r.Nodes()
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	return &earleo.Node{
		Type:     s.lhs,
		Start:    span.From(),
		End:      span.To(),
		Children: nodes,
	}
}

// reduce creates the node for a completed state and applies the rule's action.
func (tb *TreeBuilder) reduce(s *State) (earleo.Reduction, earleo.Span) {
	tracer().Debugf("Walk from state %s", s)
	var children []*earleo.Node // collected right to left
	from, to := -1, -1
	cover := func(span earleo.Span) {
		if span.Len() == 0 {
			return
		}
		if to < 0 {
			to = span.To()
		}
		from = span.From()
	}
	l := s.backlinks()
	for l != nil {
		e := l.state
		switch {
		case e.IsComplete():
			r, span := tb.reduce(e)
			nodes := r.Nodes()
			for i := len(nodes) - 1; i >= 0; i-- {
				children = append(children, nodes[i])
			}
			cover(span)
			l = l.next
		case e.token != nil:
			leaf := tb.terminal(e)
			children = append(children, leaf)
			cover(leaf.Span())
			tb.pos = leaf.Start
			l = e.backlinks()
		default:
			stuck(fmt.Sprintf("state has no token for terminal %s: %v", e.NextSymbol(), e))
			l = l.next
		}
	}
	if from < 0 {
		from, to = tb.pos, tb.pos
	}
	reverse(children)
	node := &earleo.Node{
		Type:     s.lhs,
		Start:    from,
		End:      to,
		Children: children,
	}
	if node.Children == nil {
		node.Children = []*earleo.Node{}
	}
	tracer().Debugf("Tree node    %d|-----%s-----|%d", from, s.lhs, to)
	return earleo.Reduce(s.action, node), earleo.Span{from, to}
}

// terminal creates a leaf for the token scanned by state e.
func (tb *TreeBuilder) terminal(e *State) *earleo.Node {
	tok := e.token
	start := tok.Offset
	if tok.Synthetic() && start > tb.pos {
		start = tb.pos
	}
	return &earleo.Node{
		Type:  e.NextSymbol(),
		Value: tok.Value,
		Start: start,
		End:   start + len(tok.Raw),
		Token: tok,
	}
}

func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}

// reverse reverses a slice of nodes in place.
func reverse(nodes []*earleo.Node) {
	for i := len(nodes)/2 - 1; i >= 0; i-- {
		opp := len(nodes) - 1 - i
		nodes[i], nodes[opp] = nodes[opp], nodes[i]
	}
}
