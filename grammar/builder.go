package grammar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/earleo"
)

// Builder is a type for creating grammars. Use NewBuilder to create one.
// Rules are added either symbol by symbol with LHS(…), or in textual form with Rule(…).
// Errors are collected and reported by Grammar().
type Builder struct {
	name    string
	rules   map[string]*Rule
	order   []*Rule
	actions map[string]earleo.Action
	accepts map[string]map[string]map[string]bool
	errs    []error
}

// NewBuilder gets a new grammar builder, given the name of the grammar to build.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		rules:   make(map[string]*Rule),
		actions: make(map[string]earleo.Action),
		accepts: make(map[string]map[string]map[string]bool),
	}
}

// LHS starts a new alternative for non-terminal name.
func (b *Builder) LHS(name string) *RuleBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("left hand side of rule must not be empty"))
	}
	return &RuleBuilder{b: b, lhs: name}
}

// Rule adds one or more rules in textual form (see package documentation).
// An optional action is attached to every rule defined by text.
func (b *Builder) Rule(text string, action ...earleo.Action) *Builder {
	rules, err := parseRules(text)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	for _, r := range rules {
		for _, alt := range r.alts {
			b.addAlternatives(r.lhs, expand(alt))
		}
		if len(action) > 0 && action[0] != nil {
			b.actions[r.lhs] = action[0]
		}
	}
	return b
}

// Action attaches a semantic action to the rule for lhs.
func (b *Builder) Action(lhs string, action earleo.Action) *Builder {
	b.actions[lhs] = action
	return b
}

// Accept declares that symbol sym, occuring in the rule for lhs, will accept
// tokens of the given kinds, in addition to tokens of its own kind. This is
// useful e.g. for letting a keyword be used as an identifier in certain positions.
func (b *Builder) Accept(lhs string, sym string, kinds ...string) *Builder {
	m, ok := b.accepts[lhs]
	if !ok {
		m = make(map[string]map[string]bool)
		b.accepts[lhs] = m
	}
	if m[sym] == nil {
		m[sym] = make(map[string]bool)
	}
	for _, k := range kinds {
		m[sym][k] = true
	}
	return b
}

// Grammar returns the production table built so far, or the first error
// which occured during building.
func (b *Builder) Grammar() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	for lhs, a := range b.actions {
		r, ok := b.rules[lhs]
		if !ok {
			return nil, fmt.Errorf("action for undefined non-terminal %q", lhs)
		}
		r.Action = a
	}
	for lhs, acc := range b.accepts {
		r, ok := b.rules[lhs]
		if !ok {
			return nil, fmt.Errorf("token acceptance for undefined non-terminal %q", lhs)
		}
		r.Accepts = acc
	}
	t := &Table{
		Name:  b.name,
		rules: b.rules,
		order: b.order,
	}
	if err := t.finish(); err != nil {
		return nil, err
	}
	tracer().Debugf("grammar %s has %d rules with %d alternatives", t.Name, len(t.order), t.Size())
	return t, nil
}

func (b *Builder) addAlternatives(lhs string, alts [][]string) {
	r, ok := b.rules[lhs]
	if !ok {
		r = &Rule{LHS: lhs}
		b.rules[lhs] = r
		b.order = append(b.order, r)
	}
	for _, rhs := range alts {
		if !hasAlternative(r, rhs) {
			r.Alternatives = append(r.Alternatives, rhs)
		}
	}
}

func hasAlternative(r *Rule, rhs []string) bool {
	for _, alt := range r.Alternatives {
		if equalSymbols(alt, rhs) {
			return true
		}
	}
	return false
}

func equalSymbols(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder collects the symbols of a single right hand side.
// It is returned by Builder.LHS and completed by End or Epsilon.
type RuleBuilder struct {
	b    *Builder
	lhs  string
	syms []symbol
}

type symbol struct {
	name     string
	optional bool
}

// N appends a non-terminal symbol.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.syms = append(rb.syms, symbol{name: name})
	return rb
}

// T appends a terminal symbol, naming a token kind.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.syms = append(rb.syms, symbol{name: name})
	return rb
}

// L appends a literal terminal, which will match its text exactly.
func (rb *RuleBuilder) L(text string) *RuleBuilder {
	rb.syms = append(rb.syms, symbol{name: strconv.Quote(text)})
	return rb
}

// C appends a character class terminal, e.g. "[0-9]+".
func (rb *RuleBuilder) C(class string) *RuleBuilder {
	if !IsClass(class) {
		rb.b.errs = append(rb.b.errs, fmt.Errorf("rule %s: malformed character class %q", rb.lhs, class))
	}
	rb.syms = append(rb.syms, symbol{name: class})
	return rb
}

// Opt marks the symbol appended last as optional.
func (rb *RuleBuilder) Opt() *RuleBuilder {
	if len(rb.syms) == 0 {
		rb.b.errs = append(rb.b.errs, fmt.Errorf("rule %s: nothing to make optional", rb.lhs))
		return rb
	}
	rb.syms[len(rb.syms)-1].optional = true
	return rb
}

// End completes the right hand side and adds it to the grammar.
func (rb *RuleBuilder) End() *Builder {
	rb.b.addAlternatives(rb.lhs, expand(rb.syms))
	return rb.b
}

// Epsilon adds an empty right hand side to the grammar.
func (rb *RuleBuilder) Epsilon() *Builder {
	rb.syms = nil
	return rb.End()
}

// expand returns all combinations of a right hand side with and without its
// optional symbols. The combination omitting all optional symbols comes first.
func expand(syms []symbol) [][]string {
	var opts []int
	for i, s := range syms {
		if s.optional {
			opts = append(opts, i)
		}
	}
	count := 1 << uint(len(opts))
	alts := make([][]string, 0, count)
	for mask := 0; mask < count; mask++ {
		rhs := make([]string, 0, len(syms))
		o := 0
		for i, s := range syms {
			if o < len(opts) && opts[o] == i {
				include := mask&(1<<uint(o)) != 0
				o++
				if !include {
					continue
				}
			}
			rhs = append(rhs, s.name)
		}
		alts = append(alts, rhs)
	}
	return alts
}
