package grammar

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/earleo"
)

// Epsilon is the textual symbol for an empty right hand side.
const Epsilon = "ε"

// Rule is a production rule of a grammar: a non-terminal symbol on the left
// hand side together with one or more alternative right hand sides.
type Rule struct {
	LHS          string
	Alternatives [][]string
	IDs          []string                   // stable ID per alternative
	Action       earleo.Action              // semantic action, may be nil
	Accepts      map[string]map[string]bool // symbol → token kinds it accepts in this rule
}

// Accept is true if symbol sym of r is declared to accept tokens of the given kind.
func (r *Rule) Accept(sym, kind string) bool {
	if r == nil || r.Accepts == nil {
		return false
	}
	return r.Accepts[sym][kind]
}

// Alt returns the ID and the right hand side of alternative i.
func (r *Rule) Alt(i int) (string, []string) {
	return r.IDs[i], r.Alternatives[i]
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS)
	b.WriteString(" :")
	for i, rhs := range r.Alternatives {
		if i > 0 {
			b.WriteString(" |")
		}
		if len(rhs) == 0 {
			b.WriteString(" " + Epsilon)
			continue
		}
		b.WriteString(" " + strings.Join(rhs, " "))
	}
	return b.String()
}

// Table is a production table: an immutable mapping from non-terminals
// to their rules. Tables are created by a Builder.
type Table struct {
	Name      string
	rules     map[string]*Rule
	order     []*Rule
	terminals *treeset.Set
	ids       map[string]*Rule
}

// Start returns the start rule, i.e. the first rule registered.
func (t *Table) Start() *Rule {
	if len(t.order) == 0 {
		return nil
	}
	return t.order[0]
}

// Rule returns the rule for a non-terminal, or nil.
func (t *Table) Rule(lhs string) *Rule {
	return t.rules[lhs]
}

// RuleByID returns the rule containing the alternative with the given ID, or nil.
func (t *Table) RuleByID(id string) *Rule {
	return t.ids[id]
}

// Rules returns all rules in order of registration.
func (t *Table) Rules() []*Rule {
	return t.order
}

// IsNonTerminal is true if sym is the left hand side of a rule.
func (t *Table) IsNonTerminal(sym string) bool {
	_, ok := t.rules[sym]
	return ok
}

// Terminals returns all terminal symbols of the grammar, sorted.
func (t *Table) Terminals() []string {
	terms := make([]string, 0, t.terminals.Size())
	for _, v := range t.terminals.Values() {
		terms = append(terms, v.(string))
	}
	return terms
}

// Size returns the number of alternatives over all rules.
func (t *Table) Size() int {
	n := 0
	for _, r := range t.order {
		n += len(r.Alternatives)
	}
	return n
}

// Dump is a debugging helper, writing all alternatives to the trace (level debug).
func (t *Table) Dump() {
	tracer().Debugf("--- %s ----------------------------------------", t.Name)
	n := 0
	for _, r := range t.order {
		for _, rhs := range r.Alternatives {
			tracer().Debugf("%3d: [%s] ::= [%s]", n, r.LHS, strings.Join(rhs, " "))
			n++
		}
	}
	tracer().Debugf("-----------------------------------------------------")
}

// finish computes the derived information of a table after all rules are registered.
func (t *Table) finish() error {
	if len(t.order) == 0 {
		return fmt.Errorf("grammar %q has no rules", t.Name)
	}
	t.terminals = treeset.NewWithStringComparator()
	t.ids = make(map[string]*Rule)
	for _, r := range t.order {
		r.IDs = make([]string, len(r.Alternatives))
		for i, rhs := range r.Alternatives {
			id, err := ruleID(r.LHS, rhs)
			if err != nil {
				return err
			}
			r.IDs[i] = id
			t.ids[id] = r
			for _, sym := range rhs {
				if _, ok := t.rules[sym]; !ok {
					t.terminals.Add(sym)
				}
			}
		}
	}
	return nil
}

// --- Rule identity ---------------------------------------------------------

type ruleKey struct {
	LHS string
	RHS []string
}

// ruleID derives a stable identifier for alternative rhs of a rule for lhs.
func ruleID(lhs string, rhs []string) (string, error) {
	h, err := structhash.Hash(ruleKey{LHS: lhs, RHS: rhs}, 1)
	if err != nil {
		return "", fmt.Errorf("cannot derive rule ID for %s: %w", lhs, err)
	}
	h = strings.TrimPrefix(h, "v1_")
	if len(h) > 16 {
		h = h[:16]
	}
	return lhs + "#" + h, nil
}

// --- Symbol classification -------------------------------------------------

// IsLiteral is true for quoted terminals like "+" or 'while'.
func IsLiteral(sym string) bool {
	if len(sym) < 2 {
		return false
	}
	q := sym[0]
	return (q == '"' || q == '\'') && sym[len(sym)-1] == q
}

// IsClass is true for character class terminals like [0-9] or [a-z]+.
func IsClass(sym string) bool {
	if !strings.HasPrefix(sym, "[") {
		return false
	}
	s := strings.TrimRight(sym, "+")
	return len(s) > 1 && strings.HasSuffix(s, "]")
}

// Unquote returns the text of a quoted literal. ok is false if sym is not a literal.
func Unquote(sym string) (string, bool) {
	if !IsLiteral(sym) {
		return "", false
	}
	inner := sym[1 : len(sym)-1]
	if !strings.Contains(inner, `\`) {
		return inner, true
	}
	var b strings.Builder
	escaped := false
	for _, r := range inner {
		if escaped {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), true
}
