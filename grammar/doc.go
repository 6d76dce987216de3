/*
Package grammar implements production tables for the Earley parser.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
are either names of token categories, quoted literals or character
classes. Grammars may contain epsilon-productions.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").L("b").End()            // B  ->  "b"
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").C("[0-9]+").End()       // D  ->  [0-9]+
    b.LHS("D").Epsilon()               // D  ->

This results in the following trivial grammar:

   g, _ := b.Grammar()
   g.Dump()

   0: [S] ::= [A a]
   1: [A] ::= [B D]
   2: [B] ::= ["b"]
   3: [B] ::= []
   4: [D] ::= [[0-9]+]
   5: [D] ::= []

The first rule registered is the start rule.

Textual Rules

Rules may as well be given in a compact textual notation, one rule per line:

    Sum     : Sum [+-] Product | Product
    Product : Product "*" Factor | Factor
    Factor  : "(" Sum ")" | Number
    Number  : [0-9]+

Quoted literals and character classes are terminals which a lexer will
recognize by their exact text (see package scanner/lexmach). A trailing '?'
marks a symbol as optional; the rule is expanded into alternatives with and
without it. 'ε' denotes the empty alternative.

Every alternative of a rule receives a stable identifier, derived from a
structural hash of its left hand side and its right hand side symbols.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleo.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("earleo.grammar")
}
