package earley

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/grammar"
)

// Errors returned by the parser. ParseErrors wrap one of the first three.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrLexical         = errors.New("lexical error")
	ErrNoGrammar       = errors.New("parser has no grammar")
	ErrNoLexer         = errors.New("parser has no lexer")
)

// ParseError describes a parse which cannot continue. It is handed to the
// error handler of a parser, if one is set, and returned otherwise.
type ParseError struct {
	PreviousToken *earleo.Token // last token successfully consumed, may be nil
	Token         *earleo.Token // token which could not be consumed, nil at end of input
	Column        int           // column which could not be continued
	Chart         *Chart
	Grammar       *grammar.Table
	Err           error // one of ErrUnexpectedToken, ErrUnexpectedEOF, ErrLexical
	source        string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	switch {
	case e.Token != nil:
		fmt.Fprintf(&b, "%v %q at line %d, column %d", e.Err, e.Token.Text(),
			e.Token.Line, e.Token.Col)
	case e.PreviousToken != nil:
		fmt.Fprintf(&b, "%v after %q at line %d, column %d", e.Err, e.PreviousToken.Text(),
			e.PreviousToken.Line, e.PreviousToken.Col)
	default:
		b.WriteString(e.Err.Error())
	}
	if near := e.near(); near != "" {
		fmt.Fprintf(&b, " near %q", near)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Expected returns the terminals and non-terminals the parser would have been
// able to continue with at the error column.
func (e *ParseError) Expected() []string {
	if e.Chart == nil {
		return nil
	}
	S := e.Chart.Column(e.Column)
	if S == nil {
		return nil
	}
	seen := make(map[string]bool)
	var syms []string
	for _, s := range S.States() {
		if sym := s.NextSymbol(); sym != "" && !seen[sym] {
			seen[sym] = true
			syms = append(syms, sym)
		}
	}
	return syms
}

const nearContext = 12

// near returns a snippet of the input around the error position.
func (e *ParseError) near() string {
	if e.source == "" {
		return ""
	}
	pos := len(e.source)
	if e.Token != nil && !e.Token.Synthetic() {
		pos = e.Token.Offset
	} else if e.PreviousToken != nil {
		pos = e.PreviousToken.Offset + len(e.PreviousToken.Raw)
	}
	from, to := pos-nearContext, pos+nearContext
	if from < 0 {
		from = 0
	}
	if to > len(e.source) {
		to = len(e.source)
	}
	for from > 0 && !utf8.RuneStart(e.source[from]) {
		from--
	}
	for to < len(e.source) && !utf8.RuneStart(e.source[to]) {
		to++
	}
	if from >= to {
		return ""
	}
	return strings.TrimSpace(e.source[from:to])
}
