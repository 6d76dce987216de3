package grammar

import (
	"fmt"
	"strings"
	"unicode"
)

// Compile creates a production table from rules in textual form, one rule per line.
// Lines starting with '|' continue the alternatives of the preceding rule,
// lines starting with '#' are comments.
//
//    Statement : Ident "=" Expr ";"?
//              | "print" Expr ";"?
//
// The left hand side may be separated from the right hand side by
// ':', '->', '::=' or '='. The first rule is the start rule.
func Compile(name string, src string) (*Table, error) {
	b := NewBuilder(name)
	b.Rule(src)
	return b.Grammar()
}

type textRule struct {
	lhs  string
	alts [][]symbol
}

// parseRules splits src into rules and tokenizes their right hand sides.
func parseRules(src string) ([]textRule, error) {
	var rules []textRule
	var lines []string // logical lines, continuations joined
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "|") {
			if len(lines) == 0 {
				return nil, fmt.Errorf("continuation without rule: %q", line)
			}
			lines[len(lines)-1] += " " + line
			continue
		}
		lines = append(lines, line)
	}
	for _, line := range lines {
		lhs, body, err := splitRule(line)
		if err != nil {
			return nil, err
		}
		alts, err := tokenizeBody(lhs, body)
		if err != nil {
			return nil, err
		}
		rules = append(rules, textRule{lhs: lhs, alts: alts})
	}
	return rules, nil
}

var separators = []string{"::=", "->", ":", "="}

func splitRule(line string) (string, string, error) {
	at, sep := -1, ""
	for _, s := range separators {
		if i := strings.Index(line, s); i > 0 && (at < 0 || i < at) {
			at, sep = i, s
		}
	}
	if at < 0 {
		return "", "", fmt.Errorf("missing ':' in rule %q", line)
	}
	lhs := strings.TrimSpace(line[:at])
	if lhs == "" || strings.ContainsAny(lhs, " \t\"'[]|?") {
		return "", "", fmt.Errorf("illegal left hand side %q in rule %q", lhs, line)
	}
	return lhs, line[at+len(sep):], nil
}

func isEpsilon(sym string) bool {
	return sym == Epsilon || sym == "𝜖"
}

// tokenizeBody splits a right hand side into alternatives of symbols.
func tokenizeBody(lhs string, body string) ([][]symbol, error) {
	var alts [][]symbol
	cur := []symbol{}
	rs := []rune(body)
	i := 0
	for i < len(rs) {
		c := rs[i]
		var sym symbol
		switch {
		case unicode.IsSpace(c):
			i++
			continue
		case c == '|':
			alts = append(alts, cur)
			cur = []symbol{}
			i++
			continue
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(rs) && rs[j] != c {
				if rs[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(rs) {
				return nil, fmt.Errorf("rule %s: unterminated literal %s", lhs, string(rs[i:]))
			}
			if j == i+1 {
				return nil, fmt.Errorf("rule %s: empty literal", lhs)
			}
			sym.name = string(rs[i : j+1])
			i = j + 1
		case c == '[':
			j := i + 1
			for j < len(rs) && rs[j] != ']' {
				if rs[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(rs) || j == i+1 {
				return nil, fmt.Errorf("rule %s: malformed character class %s", lhs, string(rs[i:]))
			}
			sym.name = string(rs[i : j+1])
			i = j + 1
			if i < len(rs) && rs[i] == '+' {
				sym.name += "+"
				i++
			} else if i < len(rs) && rs[i] == '*' { // X* ≡ (X+)?
				sym.name += "+"
				sym.optional = true
				i++
			}
		default:
			j := i
			for j < len(rs) && !unicode.IsSpace(rs[j]) && !strings.ContainsRune("|?\"'[", rs[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("rule %s: unexpected %q", lhs, c)
			}
			sym.name = string(rs[i:j])
			i = j
		}
		if i < len(rs) && rs[i] == '?' {
			sym.optional = true
			i++
		}
		if isEpsilon(sym.name) {
			continue
		}
		cur = append(cur, sym)
	}
	alts = append(alts, cur)
	return alts, nil
}
