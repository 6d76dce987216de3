/*
Command earleo parses text with an Earley parser and prints the parse trees.

Grammars are read from grammar files, either in the textual rule notation of
package grammar or in EBNF (file extension ".ebnf"). Without a grammar file,
earleo uses a simple expression grammar.

    earleo parse -g expr.grammar "1 + 2 * 3"
    earleo parse -g lang.ebnf --start Program --file prog.txt --stats
    earleo repl -g expr.grammar
    earleo grammar -g expr.grammar

Grammar files contain rules, one per line, plus directives:

    # pattern for a terminal, for the lexer
    %token Number [0-9]+
    # input to skip (default: whitespace)
    %ignore [ \t]+
    # insert missing statement terminators
    %terminator ";"
    Sum : Sum "+" Number | Number

The REPL accepts input lines to parse, and the commands ':grammar', ':chart'
and ':quit'.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleo.cmd'
func tracer() tracing.Trace {
	return tracing.Select("earleo.cmd")
}
