package lexmach

import (
	"testing"

	"github.com/npillmayer/earleo/grammar"
	"github.com/npillmayer/earleo/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	init := func(lm *LMAdapter) {
		lm.Lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lm.Token("STRING", `\"[^"]*\"`)
		lm.Token("ID", `#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`)
		lm.Token("NUM", `[1-9][0-9]*`)
		lm.Ignore(`( |\,|\t|\n|\r)+`)
	}
	LM, err := NewLMAdapter(init, literals, keywords)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token != nil {
			t.Logf(" %6s | %15s | @%5d", token.Kind, token.Raw, token.Offset)
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

var literals = []string{"'", "(", ")", "[", "]", "=", "+", "-", "*", "/"}
var keywords = []string{"nil", "t"}

func TestKeywordPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(func(lm *LMAdapter) {
		lm.Token("ID", `[a-z]+`)
		lm.Ignore(Whitespace)
	}, nil, keywords)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("nil nile t")
	expected := []string{"nil", "ID", "t"}
	for i, kind := range expected {
		token := sc.NextToken()
		if token == nil || token.Kind != kind {
			t.Errorf("Expected token #%d to be of kind %s, is %v", i, kind, token)
		}
	}
}

func TestFromGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	g, err := grammar.Compile("Assign", `Assign : Ident "=" Value ";"?
Value : [0-9]+ | [+-] Value | nil`)
	if err != nil {
		t.Fatal(err)
	}
	LM, err := FromGrammar(g, WithToken("Ident", "[a-z]+"))
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("x = -42;\ny = nil")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"Ident", `"="`, "[+-]", "[0-9]+", `";"`, "Ident", `"="`, "nil"}
	for i, kind := range expected {
		token := sc.NextToken()
		if token == nil {
			t.Fatalf("Expected token #%d to be of kind %s, is end of input", i, kind)
		}
		if token.Kind != kind {
			t.Errorf("Expected token #%d to be of kind %s, is %s", i, kind, token.Kind)
		}
		if i == 5 && token.Offset != 9 {
			t.Errorf("Expected y at offset 9, is at offset %d", token.Offset)
		}
	}
	if token := sc.NextToken(); token != nil {
		t.Errorf("Expected end of input, have %v", token)
	}
}

func TestLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	g, err := grammar.Compile("Err", `S : "a" S | "a"`)
	if err != nil {
		t.Fatal(err)
	}
	LM, err := FromGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("a ? a")
	var lexErr error
	sc.SetErrorHandler(func(e error) { lexErr = e })
	if token := sc.NextToken(); token == nil || token.Raw != "a" {
		t.Errorf("Expected first token to be a, is %v", token)
	}
	token := sc.NextToken()
	if token == nil || token.Kind != scanner.Unmatched || token.Raw != "?" || token.Offset != 2 {
		t.Errorf("Expected '?' to be delivered as unmatched input, have %v", token)
	}
	if lexErr == nil {
		t.Errorf("Expected error handler to be called")
	}
	if token := sc.NextToken(); token == nil || token.Raw != "a" || token.Offset != 4 {
		t.Errorf("Expected scanner to resume behind '?', have %v", token)
	}
	if token := sc.NextToken(); token != nil {
		t.Errorf("Expected end of input, have %v", token)
	}
}

func TestClassPattern(t *testing.T) {
	for sym, pattern := range map[string]string{
		"[0-9]+":  "[0-9]+",
		"[+-]":    `[\+\-]`,
		"[a-z_]+": `[a-z\_]+`,
		`[^"]`:    `[^\"]`,
		`[ \t]+`:  `[ \t]+`,
	} {
		if p := ClassPattern(sym); p != pattern {
			t.Errorf("Expected pattern for %s to be %s, is %s", sym, pattern, p)
		}
		lexer := lexmachine.NewLexer()
		lexer.Add([]byte(ClassPattern(sym)), Skip)
		if err := lexer.Compile(); err != nil {
			t.Errorf("Pattern for %s does not compile: %v", sym, err)
		}
	}
}
