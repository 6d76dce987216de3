package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token != nil {
			t.Logf(" %6s | %15s | @%5d", token.Kind, token.Raw, token.Offset)
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestScanKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	lexer := GoLexer{Name: "kinds"}
	sc, err := lexer.Scanner(`a := 'c' + 1.5`)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"Ident", `":"`, `"="`, "Char", `"+"`, "Float"}
	for i, kind := range expected {
		token := sc.NextToken()
		if token == nil {
			t.Fatalf("Expected token #%d to be of kind %s, is end of input", i, kind)
		}
		if token.Kind != kind {
			t.Errorf("Expected token #%d to be of kind %s, is %s", i, kind, token.Kind)
		}
	}
	if token := sc.NextToken(); token != nil {
		t.Errorf("Expected end of input, have %v", token)
	}
}

func TestScanOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	sc := GoTokenizer("opts", strings.NewReader(`'c' // x`), UnifyStrings(true), SkipComments(false))
	if !sc.hasmode(optionUnifyStrings) || sc.hasmode(optionSkipComments) {
		t.Errorf("Expected options to be set")
	}
	token := sc.NextToken()
	if token == nil || token.Kind != "String" {
		t.Errorf("Expected single char to be unified to String, is %v", token)
	}
	token = sc.NextToken()
	if token == nil || token.Kind != "Comment" {
		t.Errorf("Expected a comment token, is %v", token)
	}
}

func TestScanError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.scanner")
	defer teardown()
	//
	sc := GoTokenizer("error", strings.NewReader(`x "unterminated`))
	var lexErr error
	sc.SetErrorHandler(func(e error) { lexErr = e })
	if token := sc.NextToken(); token == nil || token.Raw != "x" {
		t.Errorf("Expected first token to be x, is %v", token)
	}
	if token := sc.NextToken(); token != nil {
		t.Errorf("Expected scanner to stop at error, have %v", token)
	}
	if lexErr == nil {
		t.Errorf("Expected error handler to be called")
	}
}

func TestSliceTokenizer(t *testing.T) {
	tokens := []*earleo.Token{Simple("Ident", "a"), Simple(`";"`, ";")}
	st := NewSliceTokenizer(tokens...)
	for i := range tokens {
		if tok := st.NextToken(); tok != tokens[i] {
			t.Errorf("Expected token #%d to be %v, is %v", i, tokens[i], tok)
		}
	}
	if st.NextToken() != nil {
		t.Errorf("Expected slice tokenizer to be exhausted")
	}
}
