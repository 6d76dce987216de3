/*
Package scanner defines the interfaces for token sources consumed by the parsers of
package earley.

Two default implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.
Tokens which have already been produced by other means may be fed to a parser with a
SliceTokenizer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("earleo.scanner")
}

// Tokenizer is a scanner interface. NextToken returns nil at the end of input.
//
// Lexical errors are reported to the error handler. A tokenizer able to recover
// delivers the offending input as a token of kind Unmatched and continues behind
// it; others return nil from then on.
type Tokenizer interface {
	NextToken() *earleo.Token
	SetErrorHandler(func(error))
}

// Unmatched is the token kind for input which could not be tokenized. It never
// matches a grammar symbol.
const Unmatched = "<unmatched>"

// Lexer creates tokenizers for input strings.
type Lexer interface {
	Scanner(input string) (Tokenizer, error)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Go tokenizer ----------------------------------------------------------

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
//
// Token kinds are the names text/scanner uses for its token classes
// ("Ident", "Int", "Float", "String", …). Any other character is of a kind
// equal to its quoted form, e.g. "+", matching literals in a grammar.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
	failed       bool
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.failed = true
		t.Error(&scanError{pos: s.Position, msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type scanError struct {
	pos scanner.Position
	msg string
}

func (e *scanError) Error() string {
	return e.pos.String() + ": " + e.msg
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() *earleo.Token {
	if t.failed {
		return nil
	}
	t.lastToken = t.Scan()
	if t.failed {
		return nil
	}
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return nil
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	text := t.TokenText()
	return &earleo.Token{
		Kind:   scanner.TokenString(t.lastToken),
		Value:  text,
		Raw:    text,
		Line:   t.Position.Line,
		Col:    t.Position.Column,
		Offset: t.Position.Offset,
	}
}

// GoLexer creates Go tokenizers. It implements the Lexer interface.
type GoLexer struct {
	Name    string
	Options []Option
}

// Scanner is part of the Lexer interface.
func (gl GoLexer) Scanner(input string) (Tokenizer, error) {
	return GoTokenizer(gl.Name, strings.NewReader(input), gl.Options...), nil
}

var _ Lexer = GoLexer{}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

const (
	optionSkipComments uint = 1 << 1 // do not pass comments
	optionUnifyStrings uint = 1 << 2 // treat raw strings and single chars as strings
)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

func (t *DefaultTokenizer) hasmode(m uint) bool {
	if m == optionUnifyStrings {
		return t.unifyStrings
	}
	return t.Mode&scanner.SkipComments > 0
}

// --- Pre-scanned tokens ----------------------------------------------------

// SliceTokenizer is a Tokenizer which replays a list of tokens.
type SliceTokenizer struct {
	tokens []*earleo.Token
	pos    int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer delivering tokens in order.
func NewSliceTokenizer(tokens ...*earleo.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() *earleo.Token {
	if st.pos >= len(st.tokens) {
		return nil
	}
	tok := st.tokens[st.pos]
	st.pos++
	return tok
}

// SetErrorHandler is part of the Tokenizer interface. A SliceTokenizer never fails.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// Simple creates a token of kind and value text, for building token lists by hand.
// Offsets are not tracked.
func Simple(kind string, text string) *earleo.Token {
	return &earleo.Token{Kind: kind, Value: text, Raw: text, Line: 1, Col: 1}
}
