package earleo

import (
	"fmt"
	"strconv"
)

// --- Tokens ----------------------------------------------------------------

// Token represents an input token. Tokens are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    Kind   = "Float"     // name of the category of this token (application specific)
//    Raw    = "3.1416"    // lexeme how it appeared in the input stream
//    Value  = 3.1416      // set by the scanner, may as well be the lexeme
//    Offset = 67          // occured at byte position 67 in the input stream
//
// Line and Col are 1-based and used for diagnostics only.
// Tokens which have been inserted by an error handler have an empty Raw text.
type Token struct {
	Kind   string
	Value  interface{}
	Raw    string
	Line   int
	Col    int
	Offset int
}

// Span returns the input positions covered by t.
func (t *Token) Span() Span {
	return Span{t.Offset, t.Offset + len(t.Raw)}
}

// Synthetic is true for tokens which did not originate from the input text.
func (t *Token) Synthetic() bool {
	return t.Raw == ""
}

// Text returns the lexeme of t or, for synthetic tokens, its value.
func (t *Token) Text() string {
	if t.Raw != "" {
		return t.Raw
	}
	return fmt.Sprintf("%v", t.Value)
}

func (t *Token) String() string {
	if t == nil {
		return "<eof>"
	}
	return fmt.Sprintf("%s(%s)@%d:%d", t.Kind, strconv.Quote(t.Text()), t.Line, t.Col)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
