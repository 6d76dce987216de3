package asi

import (
	"errors"
	"testing"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/earley"
	"github.com/npillmayer/earleo/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const statements = `
Program    : Statements
Statements : Statement Statements | Statement
Statement  : Ident ";"
`

func makeParser(t *testing.T, opts ...Option) *earley.Parser {
	g, err := grammar.Compile("Statements", statements)
	if err != nil {
		t.Fatal(err)
	}
	p := earley.NewParser(
		earley.WithToken("Ident", "[a-z]+"),
		earley.WithErrorHandler(New(`";"`, opts...)),
	)
	if err := p.SetGrammar(g); err != nil {
		t.Fatal(err)
	}
	return p
}

func synthetic(tree *earleo.Node) []*earleo.Node {
	var leaves []*earleo.Node
	tree.Walk(func(n *earleo.Node) bool {
		if n.IsLeaf() && n.Token != nil && n.Token.Synthetic() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

func TestInsertTerminator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.asi")
	defer teardown()
	//
	p := makeParser(t)
	for input, offsets := range map[string][]int{
		"a;":     nil,
		"a b;":   {1},
		"a; b":   {4},
		"a b c":  {1, 3, 5},
		"a\nb;":  {1},
		"ab; cd": {6},
	} {
		forest, err := p.Parse(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if len(forest) != 1 {
			t.Errorf("%q: Expected exactly one parse tree, got %d", input, len(forest))
			continue
		}
		leaves := synthetic(forest[0])
		if len(leaves) != len(offsets) {
			t.Errorf("%q: Expected %d inserted terminators, got %d in %s", input, len(offsets),
				len(leaves), forest[0])
			continue
		}
		for i, leaf := range leaves {
			if leaf.Type != `";"` || leaf.Value != ";" {
				t.Errorf("%q: Unexpected inserted leaf %s %v", input, leaf.Type, leaf.Value)
			}
			if leaf.Start != offsets[i] {
				t.Errorf("%q: Expected terminator %d at %d, is at %d", input, i, offsets[i], leaf.Start)
			}
		}
	}
}

func TestRefuseInsertion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.asi")
	defer teardown()
	//
	p := makeParser(t)
	if _, err := p.Parse("a;;"); !errors.Is(err, earley.ErrUnexpectedToken) {
		t.Errorf("Expected duplicate terminator to be an error, got %v", err)
	}
	if _, err := p.Parse(";"); !errors.Is(err, earley.ErrUnexpectedToken) {
		t.Errorf("Expected terminator at start of input to be an error, got %v", err)
	}
	if _, err := p.Parse("a ?"); !errors.Is(err, earley.ErrLexical) {
		t.Errorf("Expected lexical error not to be recovered, got %v", err)
	}
	if _, err := p.Parse(""); !errors.Is(err, earley.ErrUnexpectedEOF) {
		t.Errorf("Expected empty input to be an error, got %v", err)
	}
}

func TestInsertAfter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.asi")
	defer teardown()
	//
	p := makeParser(t, After("Number"))
	if _, err := p.Parse("a b;"); !errors.Is(err, earley.ErrUnexpectedToken) {
		t.Errorf("Expected no insertion after identifiers, got %v", err)
	}
	p = makeParser(t, After("Ident"))
	if _, err := p.Parse("a b;"); err != nil {
		t.Errorf("Expected insertion after identifiers, got %v", err)
	}
}

func TestInsertAtLineBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.asi")
	defer teardown()
	//
	p := makeParser(t, AtLineBreak())
	if _, err := p.Parse("a b;"); !errors.Is(err, earley.ErrUnexpectedToken) {
		t.Errorf("Expected no insertion within a line, got %v", err)
	}
	for _, input := range []string{"a\nb;", "a;\nb", "a\nb"} {
		if _, err := p.Parse(input); err != nil {
			t.Errorf("%q: Expected insertion at line break or end of input, got %v", input, err)
		}
	}
	p = makeParser(t, AtLineBreak(), Before("Ident"))
	if _, err := p.Parse("a b;"); err != nil {
		t.Errorf("Expected insertion before identifiers, got %v", err)
	}
}
