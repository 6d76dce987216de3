package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/earleo/asi"
	"github.com/npillmayer/earleo/earley"
	"github.com/npillmayer/earleo/grammar"
)

// We provide a simple expression grammar as a default.
const exprGrammar = `
%token Number [0-9]+
Expr   : Expr SumOp Term | Term
Term   : Term ProdOp Factor | Factor
Factor : Number | "(" Expr ")"
SumOp  : "+" | "-"
ProdOp : "*" | "/"
`

// grammarFile is a grammar together with the lexer and parser settings
// given by directives.
type grammarFile struct {
	table      *grammar.Table
	options    []earley.Option
	terminator string
}

// parser creates a parser for the grammar.
func (gf *grammarFile) parser() (*earley.Parser, error) {
	opts := gf.options
	if gf.terminator != "" {
		opts = append(opts, earley.WithErrorHandler(asi.New(gf.terminator)))
	}
	p := earley.NewParser(opts...)
	if err := p.SetGrammar(gf.table); err != nil {
		return nil, err
	}
	return p, nil
}

// grammar loads the grammar selected by the command line flags.
func (opts *rootOptions) grammar() (*grammarFile, error) {
	if opts.grammarFile == "" {
		return readGrammar("Expressions", strings.NewReader(exprGrammar))
	}
	f, err := os.Open(opts.grammarFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if filepath.Ext(opts.grammarFile) == ".ebnf" {
		if opts.start == "" {
			return nil, fmt.Errorf("EBNF grammar %s needs a start symbol (--start)", opts.grammarFile)
		}
		g, err := grammar.FromEBNF(opts.grammarFile, f, opts.start)
		if err != nil {
			return nil, err
		}
		return &grammarFile{table: g}, nil
	}
	name := strings.TrimSuffix(filepath.Base(opts.grammarFile), filepath.Ext(opts.grammarFile))
	return readGrammar(name, f)
}

// readGrammar reads rules and directives of a grammar file.
func readGrammar(name string, r io.Reader) (*grammarFile, error) {
	gf := &grammarFile{}
	var rules strings.Builder
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "%") {
			rules.WriteString(line)
			rules.WriteString("\n")
			continue
		}
		directive, arg := splitDirective(line)
		switch directive {
		case "%token":
			kind, pattern := splitDirective(arg)
			if kind == "" || pattern == "" {
				return nil, fmt.Errorf("line %d: %%token needs a kind and a pattern", lineno)
			}
			gf.options = append(gf.options, earley.WithToken(kind, pattern))
		case "%ignore":
			if arg == "" {
				return nil, fmt.Errorf("line %d: %%ignore needs a pattern", lineno)
			}
			gf.options = append(gf.options, earley.WithIgnore(arg))
		case "%terminator":
			if arg == "" {
				return nil, fmt.Errorf("line %d: %%terminator needs a symbol", lineno)
			}
			gf.terminator = arg
		default:
			return nil, fmt.Errorf("line %d: unknown directive %s", lineno, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	g, err := grammar.Compile(name, rules.String())
	if err != nil {
		return nil, err
	}
	gf.table = g
	return gf, nil
}

// splitDirective splits off the first word of a line.
func splitDirective(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
