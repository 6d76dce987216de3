/*
Package asi implements automatic statement-terminator insertion for Earley parsers.

Many languages allow omitting statement terminators at the end of a line or
before the end of input. Instead of encoding this in the grammar, a parser may
be given an error handler from this package: whenever the parser gets stuck
directly after a token which may end a statement, the handler inserts a
synthetic terminator token and lets the parser try again.

    p := earley.NewParser(earley.WithErrorHandler(asi.New(`";"`)))

Synthetic tokens have an empty Raw text and are located directly behind the
token preceding them. The handler never inserts two terminators in a row, which
bounds the number of retries by the number of input tokens.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package asi

import (
	"errors"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/earley"
	"github.com/npillmayer/earleo/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleo.asi'.
func tracer() tracing.Trace {
	return tracing.Select("earleo.asi")
}

// Option configures a terminator inserting error handler.
type Option func(*inserter)

// After restricts insertion of terminators to positions after tokens of the
// given kinds. Without this option, a terminator may follow any token.
func After(kinds ...string) Option {
	return func(ins *inserter) {
		for _, k := range kinds {
			ins.after[k] = true
		}
	}
}

// AtLineBreak restricts insertion of terminators to line breaks and to the end
// of input: the token the parser got stuck on has to start on a later line than
// the token before it. See also Before.
func AtLineBreak() Option {
	return func(ins *inserter) {
		ins.lineBreak = true
	}
}

// Before allows insertion of terminators in front of tokens of the given kinds,
// e.g. a closing brace, in addition to the positions allowed by AtLineBreak.
// If given without AtLineBreak, terminators are inserted only in front of these
// tokens and at the end of input.
func Before(kinds ...string) Option {
	return func(ins *inserter) {
		for _, k := range kinds {
			ins.before[k] = true
		}
	}
}

type inserter struct {
	kind      string // token kind of the terminator, i.e. its grammar symbol
	value     string
	after     map[string]bool
	before    map[string]bool
	lineBreak bool
}

// allowedAt is true if a terminator may be inserted in front of tok.
func (ins *inserter) allowedAt(prev, tok *earleo.Token) bool {
	if tok == nil || (!ins.lineBreak && len(ins.before) == 0) {
		return true
	}
	if ins.lineBreak && tok.Line > prev.Line {
		return true
	}
	return ins.before[tok.Kind]
}

// New creates an error handler which inserts terminator tokens. terminator is
// the grammar symbol of the terminator, either a quoted literal like `";"` or a
// terminal name like `Semicolon`.
func New(terminator string, opts ...Option) earley.ErrorHandler {
	ins := &inserter{
		kind:   terminator,
		value:  terminator,
		after:  make(map[string]bool),
		before: make(map[string]bool),
	}
	if text, ok := grammar.Unquote(terminator); ok {
		ins.value = text
	}
	for _, opt := range opts {
		opt(ins)
	}
	return ins.handle
}

func (ins *inserter) handle(p *earley.Parser, err *earley.ParseError) bool {
	if errors.Is(err, earley.ErrLexical) {
		return false
	}
	prev := err.PreviousToken
	if prev == nil || prev.Synthetic() || prev.Kind == ins.kind {
		return false
	}
	if err.Token != nil && err.Token.Synthetic() {
		return false
	}
	if len(ins.after) > 0 && !ins.after[prev.Kind] {
		return false
	}
	if !ins.allowedAt(prev, err.Token) {
		return false
	}
	tracer().Infof("inserting %s after %v", ins.kind, prev)
	p.Rewind(err.Column)
	p.InsertToken(&earleo.Token{
		Kind:   ins.kind,
		Value:  ins.value,
		Line:   prev.Line,
		Col:    prev.Col + len(prev.Raw),
		Offset: prev.Offset + len(prev.Raw),
	})
	return true
}
