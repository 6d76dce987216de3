package grammar

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/exp/ebnf"
)

// FromEBNF reads a grammar in the EBNF dialect of the Go language specification
// and converts it to a production table. start names the start production.
//
// Tokens are converted to quoted literals and ranges ("a" … "z") to character
// classes. Options, groups and repetitions introduce auxiliary non-terminals,
// named after the production they occur in. Repetitions become right-recursive
// rules:
//
//    List = Item { "," Item } .
//
// is converted to
//
//    List       : Item List_rep1
//    List_rep1  : "," Item List_rep1 | ε
//
func FromEBNF(filename string, src io.Reader, start string) (*Table, error) {
	g, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, err
	}
	prods := make([]*ebnf.Production, 0, len(g))
	for _, p := range g {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		pi, pj := prods[i].Name.String == start, prods[j].Name.String == start
		if pi != pj {
			return pi
		}
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	c := &ebnfConverter{b: NewBuilder(filename), counts: make(map[string]int)}
	for _, p := range prods {
		lhs := p.Name.String
		c.b.addAlternatives(lhs, nil) // keep order of registration
		alts, err := c.alternatives(lhs, p.Expr)
		if err != nil {
			return nil, err
		}
		c.b.addAlternatives(lhs, alts)
	}
	return c.b.Grammar()
}

type ebnfConverter struct {
	b      *Builder
	counts map[string]int
}

func (c *ebnfConverter) fresh(lhs string, kind string) string {
	c.counts[lhs]++
	name := fmt.Sprintf("%s_%s%d", lhs, kind, c.counts[lhs])
	c.b.addAlternatives(name, nil)
	return name
}

func (c *ebnfConverter) alternatives(lhs string, x ebnf.Expression) ([][]string, error) {
	if alt, ok := x.(ebnf.Alternative); ok {
		var alts [][]string
		for _, y := range alt {
			a, err := c.alternatives(lhs, y)
			if err != nil {
				return nil, err
			}
			alts = append(alts, a...)
		}
		return alts, nil
	}
	seq, err := c.sequence(lhs, x)
	if err != nil {
		return nil, err
	}
	return [][]string{seq}, nil
}

func (c *ebnfConverter) sequence(lhs string, x ebnf.Expression) ([]string, error) {
	seq, ok := x.(ebnf.Sequence)
	if !ok {
		return c.symbols(lhs, x)
	}
	rhs := []string{}
	for _, y := range seq {
		syms, err := c.symbols(lhs, y)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, syms...)
	}
	return rhs, nil
}

func (c *ebnfConverter) symbols(lhs string, x ebnf.Expression) ([]string, error) {
	switch x := x.(type) {
	case nil:
		return []string{}, nil
	case *ebnf.Name:
		return []string{x.String}, nil
	case *ebnf.Token:
		if x.String == "" {
			return []string{}, nil
		}
		return []string{strconv.Quote(x.String)}, nil
	case *ebnf.Range:
		return []string{"[" + x.Begin.String + "-" + x.End.String + "]"}, nil
	case ebnf.Sequence:
		return c.sequence(lhs, x)
	case *ebnf.Group:
		if _, isAlt := x.Body.(ebnf.Alternative); !isAlt {
			return c.sequence(lhs, x.Body)
		}
		name := c.fresh(lhs, "grp")
		alts, err := c.alternatives(name, x.Body)
		if err != nil {
			return nil, err
		}
		c.b.addAlternatives(name, alts)
		return []string{name}, nil
	case *ebnf.Option:
		name := c.fresh(lhs, "opt")
		alts, err := c.alternatives(name, x.Body)
		if err != nil {
			return nil, err
		}
		c.b.addAlternatives(name, append(alts, []string{}))
		return []string{name}, nil
	case *ebnf.Repetition:
		name := c.fresh(lhs, "rep")
		alts, err := c.alternatives(name, x.Body)
		if err != nil {
			return nil, err
		}
		for i := range alts {
			alts[i] = append(alts[i], name)
		}
		c.b.addAlternatives(name, append(alts, []string{}))
		return []string{name}, nil
	case ebnf.Alternative:
		name := c.fresh(lhs, "grp")
		alts, err := c.alternatives(name, x)
		if err != nil {
			return nil, err
		}
		c.b.addAlternatives(name, alts)
		return []string{name}, nil
	}
	return nil, fmt.Errorf("%s: unsupported EBNF expression %T", lhs, x)
}
