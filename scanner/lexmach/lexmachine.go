package lexmach

import (
	"strings"
	"unicode"

	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/grammar"
	"github.com/npillmayer/earleo/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'earleo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("earleo.scanner")
}

// Whitespace is the default pattern of input to ignore.
const Whitespace = `( |\t|\n|\r)+`

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
// It implements the scanner.Lexer interface.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	kinds []string       // token type → kind
	ids   map[string]int // kind → token type
}

var _ scanner.Lexer = (*LMAdapter)(nil)

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ("[", "';'", …) and a list of keywords ("if", "for", …).
// Literals may be given in quoted form, as they appear in a grammar; the token
// kind will then be the quoted form. Literals and keywords take precedence over
// patterns added by init.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*LMAdapter), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{
		Lexer: lexmachine.NewLexer(),
		ids:   make(map[string]int),
	}
	for _, lit := range literals {
		text, ok := grammar.Unquote(lit)
		if !ok {
			text = lit
		}
		adapter.Token(lit, escapeLiteral(text))
	}
	for _, name := range keywords {
		adapter.Token(name, escapeLiteral(name))
	}
	if init != nil {
		init(adapter)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Token adds a regular expression for tokens of the given kind.
func (lm *LMAdapter) Token(kind string, pattern string) {
	tracer().Debugf("lexer: %-12s ← %s", kind, pattern)
	lm.Lexer.Add([]byte(pattern), lm.MakeToken(kind))
}

// Ignore adds a regular expression for input to skip.
func (lm *LMAdapter) Ignore(pattern string) {
	lm.Lexer.Add([]byte(pattern), Skip)
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// of the given kind.
func (lm *LMAdapter) MakeToken(kind string) lexmachine.Action {
	id, ok := lm.ids[kind]
	if !ok {
		id = len(lm.kinds)
		lm.kinds = append(lm.kinds, kind)
		lm.ids[kind] = id
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// Kinds returns the token kinds known to the lexer.
func (lm *LMAdapter) Kinds() []string {
	return lm.kinds
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (scanner.Tokenizer, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, kinds: lm.kinds, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	kinds   []string
	failed  bool
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
//
// Input which no pattern matches is reported to the error handler and then
// delivered as a token of kind scanner.Unmatched. Scanning resumes behind it.
func (lms *LMScanner) NextToken() *earleo.Token {
	if lms.failed {
		return nil
	}
	tok, err, eos := lms.scanner.Next()
	if err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			return lms.unmatched(ui)
		}
		lms.failed = true
		return nil
	}
	if eos {
		return nil
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %s %q", lms.kinds[token.Type], token.Lexeme)
	return &earleo.Token{
		Kind:   lms.kinds[token.Type],
		Value:  token.Value,
		Raw:    string(token.Lexeme),
		Line:   token.StartLine,
		Col:    token.StartColumn,
		Offset: token.TC,
	}
}

// unmatched wraps unconsumed input into a token and moves the scanner behind it.
func (lms *LMScanner) unmatched(ui *machines.UnconsumedInput) *earleo.Token {
	end := ui.FailTC
	if end <= ui.StartTC {
		end = ui.StartTC + 1
	}
	if end > len(ui.Text) {
		end = len(ui.Text)
	}
	lms.scanner.TC = end
	text := string(ui.Text[ui.StartTC:end])
	return &earleo.Token{
		Kind:   scanner.Unmatched,
		Value:  text,
		Raw:    text,
		Line:   ui.StartLine,
		Col:    ui.StartColumn,
		Offset: ui.StartTC,
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// --- Lexers from grammars --------------------------------------------------

// Option configures lexers created by FromGrammar.
type Option func(*config)

type config struct {
	tokens []tokenDef
	ignore []string
}

type tokenDef struct {
	kind, pattern string
}

// WithToken defines a pattern for a bare terminal name of the grammar
// (or any other token kind).
func WithToken(kind string, pattern string) Option {
	return func(c *config) {
		c.tokens = append(c.tokens, tokenDef{kind, pattern})
	}
}

// WithIgnore adds a pattern of input to skip, replacing the default (whitespace).
func WithIgnore(pattern string) Option {
	return func(c *config) {
		c.ignore = append(c.ignore, pattern)
	}
}

// FromGrammar creates a lexer for the terminals of g. Quoted literals and character
// classes produce tokens of a kind equal to the grammar symbol. Bare terminal names
// without a pattern (see WithToken) are treated as keywords.
func FromGrammar(g *grammar.Table, opts ...Option) (*LMAdapter, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	defined := make(map[string]bool, len(c.tokens))
	for _, t := range c.tokens {
		defined[t.kind] = true
	}
	var literals, keywords, classes []string
	for _, term := range g.Terminals() {
		switch {
		case grammar.IsLiteral(term):
			literals = append(literals, term)
		case grammar.IsClass(term):
			classes = append(classes, term)
		case !defined[term]:
			keywords = append(keywords, term)
		}
	}
	ignore := c.ignore
	if len(ignore) == 0 {
		ignore = []string{Whitespace}
	}
	return NewLMAdapter(func(lm *LMAdapter) {
		for _, class := range classes {
			lm.Token(class, ClassPattern(class))
		}
		for _, t := range c.tokens {
			lm.Token(t.kind, t.pattern)
		}
		for _, pattern := range ignore {
			lm.Ignore(pattern)
		}
	}, literals, keywords)
}

// escapeLiteral returns a pattern matching text literally.
func escapeLiteral(text string) string {
	var b strings.Builder
	for _, r := range text {
		if isPlain(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return b.String()
}

// ClassPattern translates a character class symbol of a grammar (like "[+-]" or
// "[a-z_]+") into a lexmachine pattern. Ranges between letters or digits are kept,
// every other special character is escaped.
func ClassPattern(sym string) string {
	plus := strings.HasSuffix(sym, "]+")
	body := strings.TrimSuffix(strings.TrimPrefix(sym, "["), "+")
	body = strings.TrimSuffix(body, "]")
	rs := []rune(body)
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case i == 0 && c == '^' && len(rs) > 1:
			b.WriteRune(c)
		case c == '\\' && i+1 < len(rs):
			b.WriteRune(c)
			b.WriteRune(rs[i+1])
			i++
		case c == '-' && i > 0 && i+1 < len(rs) && isAlnum(rs[i-1]) && isAlnum(rs[i+1]):
			b.WriteRune(c)
		case isPlain(c):
			b.WriteRune(c)
		default:
			b.WriteByte('\\')
			b.WriteRune(c)
		}
	}
	b.WriteByte(']')
	if plus {
		b.WriteByte('+')
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isPlain(r rune) bool {
	return isAlnum(r) || r == ' ' || r > unicode.MaxASCII
}
