package earley

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/grammar"
	"github.com/npillmayer/earleo/scanner"
	"github.com/npillmayer/earleo/scanner/lexmach"
)

// DefaultCacheSize is the number of parse results a parser remembers, if not
// configured otherwise.
const DefaultCacheSize = 64

// Forest is the result of a successful parse: one tree per accepted derivation
// of the start rule.
type Forest []*earleo.Node

// Copy returns a forest of copies of the trees in f.
func (f Forest) Copy() Forest {
	cp := make(Forest, len(f))
	for i, tree := range f {
		cp[i] = tree.Copy()
	}
	return cp
}

// ErrorHandler is called by the parser if it cannot continue. The handler may
// modify the parse, using Rewind and InsertToken, and return true to resume it.
// If it returns false, the parse fails with err.
//
// If a handler returns true without rewinding the parser, the offending token
// is skipped. This includes input the lexer could not match.
type ErrorHandler func(p *Parser, err *ParseError) bool

// Parser is an Earley parser. Create one with NewParser and set a grammar with
// SetGrammar.
//
// A parser is not safe for concurrent use.
type Parser struct {
	OnError   ErrorHandler
	grammar   *grammar.Table
	chart     *Chart
	lexer     scanner.Lexer
	ownLexer  bool // lexer has been created from the grammar
	lexOpts   []lexmach.Option
	cacheSize int
	cache     *lru.Cache[string, Forest]
	leo       leoCache
	tokens    *tokenStream
	column    int // column currently processed
	input     string
	lexErr    error
}

// Option configures a parser.
type Option func(p *Parser)

// WithLexer sets the lexer for input strings. If no lexer is set, the parser
// creates one from the terminals of its grammar.
func WithLexer(lexer scanner.Lexer) Option {
	return func(p *Parser) {
		p.lexer = lexer
	}
}

// WithErrorHandler sets an error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Parser) {
		p.OnError = h
	}
}

// WithCacheSize sets the number of parse results to remember. A size of 0
// switches memoization off.
func WithCacheSize(size int) Option {
	return func(p *Parser) {
		p.cacheSize = size
	}
}

// WithIgnore adds a pattern of input for the default lexer to skip.
// If no such pattern is given, whitespace is ignored.
func WithIgnore(pattern string) Option {
	return func(p *Parser) {
		p.lexOpts = append(p.lexOpts, lexmach.WithIgnore(pattern))
	}
}

// WithToken defines a pattern for a terminal of the grammar, to be used by the
// default lexer.
func WithToken(kind string, pattern string) Option {
	return func(p *Parser) {
		p.lexOpts = append(p.lexOpts, lexmach.WithToken(kind, pattern))
	}
}

// NewParser creates an Earley parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		chart:     NewChart(),
		leo:       make(leoCache),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cacheSize > 0 {
		p.cache, _ = lru.New[string, Forest](p.cacheSize)
	}
	return p
}

// SetGrammar sets the grammar to parse with. Column 0 of the chart is seeded with
// the alternatives of the start rule. Previous parse results are forgotten.
func (p *Parser) SetGrammar(g *grammar.Table) error {
	if g == nil || g.Start() == nil {
		return ErrNoGrammar
	}
	start := g.Start()
	seed := make([]*State, len(start.Alternatives))
	for i := range start.Alternatives {
		id, rhs := start.Alt(i)
		seed[i] = &State{ruleID: id, lhs: start.LHS, rhs: rhs, action: start.Action}
	}
	if p.lexer == nil || p.ownLexer {
		lm, err := lexmach.FromGrammar(g, p.lexOpts...)
		if err != nil {
			return fmt.Errorf("cannot create lexer for grammar %s: %w", g.Name, err)
		}
		p.lexer, p.ownLexer = lm, true
	}
	p.grammar = g
	p.chart.Seed(seed)
	p.Reset()
	p.ClearCache()
	return nil
}

// Grammar returns the grammar of p.
func (p *Parser) Grammar() *grammar.Table {
	return p.grammar
}

// Chart returns the chart of the most recent parse. Results taken from the
// cache of parse results do not touch the chart.
func (p *Parser) Chart() *Chart {
	return p.chart
}

// Input returns the input text of the most recent parse.
func (p *Parser) Input() string {
	return p.input
}

// Column returns the column currently processed.
func (p *Parser) Column() int {
	return p.column
}

// Reset prepares p for a new parse.
func (p *Parser) Reset() {
	p.chart.Reset()
	p.leo = make(leoCache)
	p.column = 0
	p.tokens = nil
	p.lexErr = nil
}

// ClearCache forgets all remembered parse results.
func (p *Parser) ClearCache() {
	if p.cache != nil {
		p.cache.Purge()
	}
}

// Parse parses an input text and returns all parse trees for it. Results are
// remembered per input text. Callers get their own copy of a remembered result,
// free to modify. On failure, the error is a *ParseError, unless the parser is
// not set up correctly.
func (p *Parser) Parse(input string) (Forest, error) {
	if p.grammar == nil {
		return nil, ErrNoGrammar
	}
	if p.cache != nil {
		if forest, ok := p.cache.Get(input); ok {
			tracer().Debugf("parse result for input of length %d taken from cache", len(input))
			return forest.Copy(), nil
		}
	}
	if p.lexer == nil {
		return nil, ErrNoLexer
	}
	src, err := p.lexer.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexical, err)
	}
	forest, err := p.parse(src, input)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Add(input, forest.Copy())
	}
	return forest, nil
}

// ParseWith parses an input text and calls onResult with the parse trees.
func (p *Parser) ParseWith(input string, onResult func(Forest)) error {
	forest, err := p.Parse(input)
	if err != nil {
		return err
	}
	if onResult != nil {
		onResult(forest)
	}
	return nil
}

// ParseTokens parses the tokens delivered by src. Results are not remembered.
func (p *Parser) ParseTokens(src scanner.Tokenizer) (Forest, error) {
	if p.grammar == nil {
		return nil, ErrNoGrammar
	}
	return p.parse(src, "")
}

// Rewind resets the parse to column. Columns after it are discarded and their
// tokens will be read again. Rewind is intended to be called by error handlers.
func (p *Parser) Rewind(column int) {
	if column < 0 {
		column = 0
	}
	if column >= p.chart.Len() {
		column = p.chart.Len() - 1
	}
	tracer().Debugf("rewind to column %d", column)
	p.chart.truncate(column)
	if p.tokens != nil {
		p.tokens.rewind(column)
	}
	p.leo.forget(column)
	p.column = column
}

// InsertToken puts tok in front of the remaining input. InsertToken is intended
// to be called by error handlers.
func (p *Parser) InsertToken(tok *earleo.Token) {
	if p.tokens == nil {
		p.tokens = newTokenStream(nil)
	}
	tracer().Debugf("insert token %v", tok)
	p.tokens.insert(tok)
}

// --- The parse loop --------------------------------------------------------

func (p *Parser) parse(src scanner.Tokenizer, input string) (Forest, error) {
	p.Reset()
	p.input = input
	p.tokens = newTokenStream(src)
	src.SetErrorHandler(func(err error) {
		tracer().Errorf("scanner error: %v", err)
		p.lexErr = err
	})
	for {
		p.run()
		L := p.column - 1
		tok := p.tokens.at(L)
		if tok == nil && p.lexErr == nil {
			if accepted := p.accepted(L); len(accepted) > 0 {
				tracer().Infof("accepted input: %d tokens read, %d states in %d columns",
					p.tokens.reads, p.chart.Size(), p.chart.Len())
				return p.forest(accepted), nil
			}
		}
		perr := p.parseError(L, tok)
		tracer().Debugf("parse error: %v", perr)
		dumpColumn(p.chart.Column(L), L)
		if p.OnError == nil || !p.OnError(p, perr) {
			return nil, perr
		}
		p.lexErr = nil
		if p.column >= p.chart.Len() { // handler did not rewind
			if tok == nil && len(p.tokens.pending) == 0 {
				return nil, perr
			}
			p.column = p.chart.Len() - 1
			p.tokens.drop(p.column)
		}
	}
}

// run processes columns until no more columns are created.
func (p *Parser) run() {
	for p.column < p.chart.Len() {
		tok := p.tokens.next()
		p.process(p.column, tok)
		p.column++
	}
}

// process runs predict, scan and complete for every state of a column,
// including the states added while processing it.
func (p *Parser) process(c int, tok *earleo.Token) {
	S := p.chart.Column(c)
	for i := 0; i < S.Len(); i++ {
		s := S.At(i)
		switch {
		case s.IsComplete():
			p.complete(s)
		case p.grammar.IsNonTerminal(s.NextSymbol()):
			p.predict(s, S, c)
		default:
			p.scan(s, tok)
		}
	}
}

func (p *Parser) predict(s *State, S *StateSet, c int) {
	sym := s.NextSymbol()
	rule := p.grammar.Rule(sym)
	for i := range rule.Alternatives {
		id, rhs := rule.Alt(i)
		S.Add(&State{
			ruleID: id,
			lhs:    rule.LHS,
			rhs:    rhs,
			start:  c,
			end:    c,
			action: rule.Action,
		})
	}
	// sym may already have been derived as ε in this column
	for _, n := range S.nullCompletions(sym) {
		p.chart.Advance(s, n)
	}
}

func (p *Parser) scan(s *State, tok *earleo.Token) {
	if tok == nil {
		return
	}
	if p.matches(s, tok) {
		p.chart.Scan(s, tok)
	}
}

// matches is true if tok may be consumed as the next symbol of s.
func (p *Parser) matches(s *State, tok *earleo.Token) bool {
	sym := s.NextSymbol()
	if tok.Kind == scanner.Unmatched {
		return false
	}
	if tok.Kind == sym {
		return true
	}
	value := fmt.Sprintf("%v", tok.Value)
	if value == sym {
		return true
	}
	if text, ok := grammar.Unquote(sym); ok && text == value {
		return true
	}
	return p.grammar.Rule(s.lhs).Accept(sym, tok.Kind)
}

func (p *Parser) complete(s *State) {
	if s.start < s.end && s.isRightRecursive() && p.leoComplete(s) {
		return
	}
	from := p.chart.Column(s.start)
	for i := 0; i < from.Len(); i++ {
		if f := from.At(i); f.NextSymbol() == s.lhs {
			p.chart.Advance(f, s)
		}
	}
}

// accepted returns the complete states of the start rule spanning the input,
// in order of the start rule's alternatives.
func (p *Parser) accepted(column int) []*State {
	S := p.chart.Column(column)
	if S == nil {
		return nil
	}
	start := p.grammar.Start()
	var states []*State
	for i := range start.Alternatives {
		id, rhs := start.Alt(i)
		if s := S.Lookup(id, len(rhs), 0); s != nil {
			states = append(states, s)
		}
	}
	return states
}

func (p *Parser) forest(accepted []*State) Forest {
	tb := NewTreeBuilder(p.tokens.end())
	forest := make(Forest, 0, len(accepted))
	for _, s := range accepted {
		if tree := tb.Build(s); tree != nil {
			forest = append(forest, tree)
		}
	}
	return forest
}

func (p *Parser) parseError(column int, tok *earleo.Token) *ParseError {
	perr := &ParseError{
		PreviousToken: p.tokens.at(column - 1),
		Token:         tok,
		Column:        column,
		Chart:         p.chart,
		Grammar:       p.grammar,
		source:        p.input,
	}
	switch {
	case tok != nil && tok.Kind == scanner.Unmatched:
		perr.Err = fmt.Errorf("%w: no token matches", ErrLexical)
	case p.lexErr != nil:
		perr.Err = fmt.Errorf("%w: %v", ErrLexical, p.lexErr)
	case tok == nil:
		perr.Err = ErrUnexpectedEOF
	default:
		perr.Err = ErrUnexpectedToken
	}
	return perr
}
