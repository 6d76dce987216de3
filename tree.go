package earleo

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Parse tree nodes ------------------------------------------------------

// Node is a node of a parse tree. Inner nodes are typed by the left hand side
// of the rule they were derived from. Leaf nodes are typed by the grammar symbol
// they matched and carry the matching token.
//
// Leaves have Children == nil, inner nodes have a non-nil (possibly empty)
// slice of children. Start and End are byte offsets into the input.
type Node struct {
	Type     string
	Value    interface{}
	Start    int
	End      int
	Children []*Node
	Token    *Token
}

// IsLeaf is true for nodes created from input tokens.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Span returns the input positions covered by n.
func (n *Node) Span() Span {
	return Span{n.Start, n.End}
}

// String returns an s-expression for the tree rooted at n.
func (n *Node) String() string {
	var b strings.Builder
	n.sexpr(&b)
	return b.String()
}

func (n *Node) sexpr(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	if n.IsLeaf() {
		b.WriteString(strconv.Quote(fmt.Sprintf("%v", n.Value)))
		return
	}
	b.WriteString("(")
	b.WriteString(n.Type)
	for _, ch := range n.Children {
		b.WriteString(" ")
		ch.sexpr(b)
	}
	b.WriteString(")")
}

// Indented returns a multi-line representation of the tree rooted at n,
// one node per line, including spans.
func (n *Node) Indented() string {
	var b strings.Builder
	n.indent(&b, 0)
	return b.String()
}

func (n *Node) indent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("  ", level))
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s %q %s\n", n.Type, fmt.Sprintf("%v", n.Value), n.Span())
		return
	}
	fmt.Fprintf(b, "%s %s\n", n.Type, n.Span())
	for _, ch := range n.Children {
		ch.indent(b, level+1)
	}
}

// Walk calls f for n and all of its descendents, depth first and left to right.
// If f returns false, the children of a node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, ch := range n.Children {
		ch.Walk(f)
	}
}

// Copy returns a copy of the tree rooted at n. Node values and tokens are
// shared with the original tree.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			cp.Children[i] = ch.Copy()
		}
	}
	return &cp
}

// --- Semantic actions ------------------------------------------------------

// Action is a semantic action attached to a grammar rule. It is called exactly
// once for every completed derivation of the rule, after the children of the
// node have been reduced.
type Action func(*Node) Reduction

// Reduction is the result of a semantic action: either a single node which
// replaces the node in its parent, or a list of nodes which are spliced into the
// children of the parent. The zero value splices nothing, i.e. drops the node.
type Reduction struct {
	nodes  []*Node
	splice bool
}

// Replace returns a reduction substituting n for the reduced node.
// Replace(nil) drops the node.
func Replace(n *Node) Reduction {
	if n == nil {
		return Reduction{splice: true}
	}
	return Reduction{nodes: []*Node{n}}
}

// Splice returns a reduction inserting nodes in place of the reduced node.
func Splice(nodes ...*Node) Reduction {
	return Reduction{nodes: nodes, splice: true}
}

// Drop returns a reduction removing the reduced node from its parent.
func Drop() Reduction {
	return Reduction{splice: true}
}

// IsSplice is true if the reduction yields a list of nodes instead of a single one.
func (r Reduction) IsSplice() bool {
	return r.splice
}

// Nodes returns the nodes of the reduction.
func (r Reduction) Nodes() []*Node {
	return r.nodes
}

// Reduce applies action a to n. A nil action keeps n as it is.
func Reduce(a Action, n *Node) Reduction {
	if a == nil {
		return Replace(n)
	}
	return a(n)
}

// SkipLevel is an action which replaces a node by its children.
func SkipLevel(n *Node) Reduction {
	return Splice(n.Children...)
}

// FirstChild is an action which replaces a node by its first child.
func FirstChild(n *Node) Reduction {
	if len(n.Children) == 0 {
		return Drop()
	}
	return Replace(n.Children[0])
}

// Flatten is an action for list productions like
//
//    List : List "," Item | Item
//
// Children of the same type as the node are replaced by their own children,
// and leaves with one of the given values (e.g. separators) are dropped.
func Flatten(drop ...string) Action {
	return func(n *Node) Reduction {
		children := make([]*Node, 0, len(n.Children))
		for _, ch := range n.Children {
			if !ch.IsLeaf() && ch.Type == n.Type {
				children = append(children, ch.Children...)
				continue
			}
			if ch.IsLeaf() && containsValue(drop, ch.Value) {
				continue
			}
			children = append(children, ch)
		}
		n.Children = children
		return Replace(n)
	}
}

func containsValue(values []string, v interface{}) bool {
	s := fmt.Sprintf("%v", v)
	for _, x := range values {
		if x == s {
			return true
		}
	}
	return false
}
