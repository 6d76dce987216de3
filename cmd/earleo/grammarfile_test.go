package main

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefaultGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.cmd")
	defer teardown()
	//
	gf, err := (&rootOptions{}).grammar()
	if err != nil {
		t.Fatal(err)
	}
	if gf.table.Start().LHS != "Expr" {
		t.Errorf("Expected start symbol Expr, is %s", gf.table.Start().LHS)
	}
	p, err := gf.parser()
	if err != nil {
		t.Fatal(err)
	}
	forest, err := p.Parse("1 + 2 * (3 - 4)")
	if err != nil {
		t.Fatal(err)
	}
	if len(forest) != 1 {
		t.Errorf("Expected 1 parse tree, got %d", len(forest))
	}
	ll := leveledNodes(forest[0], nil, 0)
	if ll[0].Text != "Expr (0…15)" {
		t.Errorf("Unexpected label for root node: %q", ll[0].Text)
	}
}

func TestDirectives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.cmd")
	defer teardown()
	//
	src := `
# statements are terminated by semicolons
%token Ident [a-z]+
%ignore ( |\t|\n)+
%terminator ";"
Program   : Statement Program | Statement
Statement : Ident "=" Ident ";"
`
	gf, err := readGrammar("Statements", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if gf.terminator != `";"` {
		t.Errorf("Expected terminator to be set, is %q", gf.terminator)
	}
	p, err := gf.parser()
	if err != nil {
		t.Fatal(err)
	}
	forest, err := p.Parse("a = b\nc = d")
	if err != nil {
		t.Fatal(err)
	}
	var inserted int
	for _, item := range leveledNodes(forest[0], nil, 0) {
		if strings.HasSuffix(item.Text, "(inserted)") {
			inserted++
		}
	}
	if inserted != 2 {
		t.Errorf("Expected 2 inserted terminators, got %d", inserted)
	}
}

func TestDirectiveErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.cmd")
	defer teardown()
	//
	for _, src := range []string{
		"%token Ident\nS : Ident",
		"%ignore\nS : a",
		"%unknown x\nS : a",
		"S : \"unterminated",
	} {
		if _, err := readGrammar("Bad", strings.NewReader(src)); err == nil {
			t.Errorf("Expected error for grammar %q", src)
		}
	}
}
