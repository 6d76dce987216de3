/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of Earleo.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Most clients will not use lexmachine directly, but have the lexer derived from
a grammar. Quoted literals and character classes of the grammar become token
patterns, with token kinds equal to the grammar symbols. Bare terminal names
are keywords unless a pattern is given for them.

	g, _ := grammar.Compile("G", `Assign : Ident "=" [0-9]+`)
	LM, err := lexmach.FromGrammar(g, lexmach.WithToken("Ident", "[a-z]+"))
	if err != nil {
		// do error handling
	}

Whitespace is ignored by default. Clients providing their own patterns to
ignore with WithIgnore have to include whitespace themselves.

Clients needing more control over lexmachine use `NewLMAdapter` directly.
Package lexmach is still very opinionated on how to do the setup of lexmachine.
Clients who need more liberty in how to create the scanner should use their
own wrapper code to fit lexmachine into the scanner.Tokenizer interface.

	init := func(lm *lexmach.LMAdapter) {
		lm.Lexer.Add([]byte(`//[^\n]*\n?`), lexmach.Skip)
		lm.Token("ID", `[a-z]+`)
	}
	LM, err := lexmach.NewLMAdapter(init, literals, keywords)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until nil.

	for token := scan.NextToken(); token != nil; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
