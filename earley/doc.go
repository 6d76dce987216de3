/*
Package earley provides an Earley-Parser.

Earley's algorithm for parsing ambiguous grammars has been known since 1968.
Despite its benefits, until recently it has lead a reclusive life outside
the mainstream discussion about parsers. Many textbooks on parsing do not even
discuss it (the "Dragon book" only mentions it in the appendix).

A very accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/),
and it even boasts an implementation in Lua/OcaML.

The parser of this package works on a chart of state sets ("columns"), one per
input position. Each column is processed to a fixpoint, where states predicted
or completed during the pass are visited in the same pass. Right-recursive
derivations are collapsed following

   Joop M.I.M. Leo: A general context-free parsing algorithm running in linear
   time on every LR(k) grammar without using lookahead. Theoretical Computer
   Science 82 (1991), 165–176.

keeping the number of states linear for right-recursive rules like

   List : Item List | ε

Clients may install an error handler. It may rewind the parser and insert
tokens, and then request the parse to resume. Package asi contains such a
handler, which inserts statement terminators.

Parse Trees

After a successful parse, each accepting state is walked backwards along its
provenance links, yielding one parse tree per accepted derivation. Semantic
actions attached to grammar rules are applied bottom-up, exactly once per node.
Results of parsing an input text are memoized by the parser.

Configuration

If the global configuration flag 'panic-on-parser-stuck' is set, the tree
builder will panic with a post-mortem message whenever it finds inconsistent
provenance information.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleo.earley'.
func tracer() tracing.Trace {
	return tracing.Select("earleo.earley")
}
