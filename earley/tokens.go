package earley

import (
	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/scanner"
)

// tokenStream reads tokens from a tokenizer, one per column. It remembers the
// token read for every column, enabling an error handler to rewind the parse
// and to insert tokens in front of the remaining input.
type tokenStream struct {
	src     scanner.Tokenizer
	pending []*earleo.Token // tokens to deliver before reading from src
	history []*earleo.Token // history[i] is the token read for column i
	done    bool            // src is exhausted
	reads   int             // number of calls to src.NextToken
}

func newTokenStream(src scanner.Tokenizer) *tokenStream {
	return &tokenStream{src: src}
}

// next returns the token for the next column, or nil at the end of input.
func (ts *tokenStream) next() *earleo.Token {
	var tok *earleo.Token
	if len(ts.pending) > 0 {
		tok = ts.pending[0]
		ts.pending = ts.pending[1:]
	} else if !ts.done && ts.src != nil {
		tok = ts.src.NextToken()
		ts.reads++
		ts.done = tok == nil
	}
	ts.history = append(ts.history, tok)
	return tok
}

// at returns the token read for column i, or nil.
func (ts *tokenStream) at(i int) *earleo.Token {
	if i < 0 || i >= len(ts.history) {
		return nil
	}
	return ts.history[i]
}

// rewind forgets the tokens read for columns ≥ column, and arranges for them to
// be delivered again.
func (ts *tokenStream) rewind(column int) {
	if column < 0 {
		column = 0
	}
	if column >= len(ts.history) {
		return
	}
	var again []*earleo.Token
	for _, tok := range ts.history[column:] {
		if tok != nil {
			again = append(again, tok)
		}
	}
	ts.pending = append(again, ts.pending...)
	ts.history = ts.history[:column]
}

// drop forgets the tokens read for columns ≥ column without delivering them again.
func (ts *tokenStream) drop(column int) {
	if column >= 0 && column < len(ts.history) {
		ts.history = ts.history[:column]
	}
}

// insert puts tok in front of the remaining input.
func (ts *tokenStream) insert(tok *earleo.Token) {
	ts.pending = append([]*earleo.Token{tok}, ts.pending...)
}

// end returns the input offset behind the last token read.
func (ts *tokenStream) end() int {
	for i := len(ts.history) - 1; i >= 0; i-- {
		if tok := ts.history[i]; tok != nil {
			return tok.Offset + len(tok.Raw)
		}
	}
	return 0
}
