/*
Package earleo is a parsing toolbox for ambiguous context-free grammars.

Earleo parses with an Earley chart parser which handles left recursion,
right recursion and ambiguity. Right-recursive derivations are collapsed with
Joop Leo's transitive items, keeping them linear in time. Package structure is
as follows:

■ grammar: Package grammar holds production tables, a fluent builder, a compiler
for a compact textual rule syntax and an import path for Go-style EBNF.

■ scanner: Package scanner defines the token source interfaces consumed by the parser,
together with a tokenizer wrapping text/scanner. Sub-package lexmach derives a
lexmachine DFA from the terminals of a grammar.

■ earley: Package earley implements the chart parser, error recovery hooks and the
construction of parse trees with semantic actions.

■ asi: Package asi is an error recovery strategy which inserts statement terminators.

■ cmd/earleo: A command line tool to parse text with a grammar file, interactively
or in batch, printing the parse trees.

The base package contains data types which are used throughout all the other packages:
tokens, spans and parse tree nodes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earleo
