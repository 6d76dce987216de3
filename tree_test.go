package earleo

import (
	"testing"
)

func leaf(typ string, value string, start int) *Node {
	return &Node{Type: typ, Value: value, Start: start, End: start + len(value)}
}

func inner(typ string, children ...*Node) *Node {
	n := &Node{Type: typ, Children: children}
	if len(children) > 0 {
		n.Start, n.End = children[0].Start, children[len(children)-1].End
	}
	if n.Children == nil {
		n.Children = []*Node{}
	}
	return n
}

func TestNodeString(t *testing.T) {
	tree := inner("Sum", inner("Sum", leaf("Number", "1", 0)), leaf(`"+"`, "+", 1), inner("Empty"))
	tree.End = 2
	if s := tree.String(); s != `(Sum (Sum "1") "+" (Empty))` {
		t.Errorf("Unexpected s-expression %s", s)
	}
	expected := "Sum (0…2)\n  Sum (0…1)\n    Number \"1\" (0…1)\n  \"+\" \"+\" (1…2)\n  Empty (0…0)\n"
	if s := tree.Indented(); s != expected {
		t.Errorf("Unexpected indented tree:\n%s", s)
	}
	if inner("Empty").IsLeaf() {
		t.Errorf("Expected node without children not to be a leaf")
	}
}

func TestWalk(t *testing.T) {
	tree := inner("A", inner("B", leaf("x", "x", 0)), leaf("y", "y", 1))
	var types []string
	tree.Walk(func(n *Node) bool {
		types = append(types, n.Type)
		return n.Type != "B"
	})
	if len(types) != 3 || types[0] != "A" || types[1] != "B" || types[2] != "y" {
		t.Errorf("Unexpected walk order %v", types)
	}
}

func TestReductions(t *testing.T) {
	n := inner("L", leaf("x", "x", 0), leaf("y", "y", 1))
	if r := Reduce(nil, n); r.IsSplice() || len(r.Nodes()) != 1 || r.Nodes()[0] != n {
		t.Errorf("Expected nil action to keep node")
	}
	if r := SkipLevel(n); !r.IsSplice() || len(r.Nodes()) != 2 {
		t.Errorf("Expected SkipLevel to splice children")
	}
	if r := FirstChild(n); r.Nodes()[0].Type != "x" {
		t.Errorf("Expected FirstChild to replace node by first child")
	}
	if r := Replace(nil); !r.IsSplice() || len(r.Nodes()) != 0 {
		t.Errorf("Expected Replace(nil) to drop node")
	}
	if r := Drop(); len(r.Nodes()) != 0 {
		t.Errorf("Expected Drop to yield no nodes")
	}
}

func TestFlatten(t *testing.T) {
	list := inner("L", inner("L", inner("L", leaf("N", "1", 0)), leaf(`","`, ",", 1), leaf("N", "2", 2)),
		leaf(`","`, ",", 3), leaf("N", "3", 4))
	flatten := Flatten(",")
	// actions are applied bottom up
	flatten(list.Children[0].Children[0])
	flatten(list.Children[0])
	r := flatten(list)
	if s := r.Nodes()[0].String(); s != `(L "1" "2" "3")` {
		t.Errorf("Unexpected flattened list %s", s)
	}
}

func TestTokens(t *testing.T) {
	tok := &Token{Kind: "Ident", Value: "abc", Raw: "abc", Line: 1, Col: 4, Offset: 3}
	if tok.Span() != (Span{3, 6}) || tok.Synthetic() {
		t.Errorf("Unexpected span %v for token %v", tok.Span(), tok)
	}
	ins := &Token{Kind: `";"`, Value: ";", Offset: 6}
	if !ins.Synthetic() || ins.Text() != ";" || ins.Span().Len() != 0 {
		t.Errorf("Expected token without raw text to be synthetic")
	}
	var eof *Token
	if eof.String() != "<eof>" {
		t.Errorf("Expected nil token to print as <eof>")
	}
	if s := (Span{1, 2}).Extend(Span{0, 1}); s != (Span{0, 2}) {
		t.Errorf("Unexpected span extension %v", s)
	}
}

func TestCopy(t *testing.T) {
	tree := inner("Sum", inner("Sum", leaf("Number", "1", 0)), leaf(`"+"`, "+", 1), inner("Empty"))
	cp := tree.Copy()
	if cp == tree || cp.String() != tree.String() {
		t.Fatalf("Expected an equal copy, got %s", cp)
	}
	cp.Children[0].Type = "Product"
	cp.Children[2].Children = append(cp.Children[2].Children, leaf("x", "x", 2))
	if s := tree.String(); s != `(Sum (Sum "1") "+" (Empty))` {
		t.Errorf("Expected original tree to be unaffected by changes to the copy, is %s", s)
	}
	if cp.Children[1].IsLeaf() != true || cp.Children[2].IsLeaf() {
		t.Errorf("Expected copy to keep leaves and empty inner nodes apart")
	}
}
