package cssvalue

import "strings"

// SimpleSelector is one compound selector: an optional tag name, id, and
// class list, e.g. "rect.big#hero" -> {Tag:"rect", ID:"hero", Classes:["big"]}.
type SimpleSelector struct {
	Tag     string
	ID      string
	Classes []string
}

// Selector is a whitespace-separated (descendant combinator) sequence of
// SimpleSelectors, rightmost last.
type Selector struct {
	Parts []SimpleSelector
}

// Rule is one CSS rule: its selectors and declaration block.
type Rule struct {
	Selectors    []Selector
	Declarations map[string]string
}

// Stylesheet is an ordered list of rules, in source order (later rules win
// ties by appearing later in Match's results).
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses the simplified selector grammar
// ("sel, sel2 { prop: value; ... }" blocks, no at-rules, no combinators
// beyond descendant whitespace) this rasterizer supports for a document's
// inline `<style>` element.
func ParseStylesheet(s string) Stylesheet {
	var sheet Stylesheet
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		close := strings.IndexByte(s[open:], '}')
		if close < 0 {
			break
		}
		close += open

		selText := strings.TrimSpace(s[:open])
		body := s[open+1 : close]
		s = s[close+1:]

		if selText == "" {
			continue
		}

		var selectors []Selector
		for _, sel := range strings.Split(selText, ",") {
			sel = strings.TrimSpace(sel)
			if sel == "" {
				continue
			}
			selectors = append(selectors, parseSelector(sel))
		}
		if len(selectors) == 0 {
			continue
		}

		sheet.Rules = append(sheet.Rules, Rule{
			Selectors:    selectors,
			Declarations: Declarations(body),
		})
	}
	return sheet
}

func parseSelector(s string) Selector {
	var parts []SimpleSelector
	for _, tok := range strings.Fields(s) {
		parts = append(parts, parseSimpleSelector(tok))
	}
	return Selector{Parts: parts}
}

func parseSimpleSelector(tok string) SimpleSelector {
	var ss SimpleSelector
	i := 0
	n := len(tok)
	// Leading tag name (anything before the first '.' or '#').
	start := i
	for i < n && tok[i] != '.' && tok[i] != '#' {
		i++
	}
	ss.Tag = tok[start:i]
	for i < n {
		switch tok[i] {
		case '#':
			j := i + 1
			for j < n && tok[j] != '.' {
				j++
			}
			ss.ID = tok[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < n && tok[j] != '.' && tok[j] != '#' {
				j++
			}
			ss.Classes = append(ss.Classes, tok[i+1:j])
			i = j
		default:
			i++
		}
	}
	return ss
}

// ElementInfo is the minimal shape a node exposes to the matcher: its tag
// name, id, and class list. Ancestors is the chain from the document root
// down to (but excluding) the element itself, nearest-ancestor last.
type ElementInfo struct {
	Tag       string
	ID        string
	Classes   []string
	Ancestors []ElementInfo
}

func (ss SimpleSelector) matches(e ElementInfo) bool {
	if ss.Tag != "" && ss.Tag != "*" && ss.Tag != e.Tag {
		return false
	}
	if ss.ID != "" && ss.ID != e.ID {
		return false
	}
	for _, c := range ss.Classes {
		if !hasClass(e.Classes, c) {
			return false
		}
	}
	return true
}

func hasClass(classes []string, c string) bool {
	for _, cl := range classes {
		if cl == c {
			return true
		}
	}
	return false
}

func (sel Selector) matches(e ElementInfo) bool {
	if len(sel.Parts) == 0 {
		return false
	}
	last := sel.Parts[len(sel.Parts)-1]
	if !last.matches(e) {
		return false
	}
	// Walk remaining parts against the ancestor chain, nearest-first.
	remaining := sel.Parts[:len(sel.Parts)-1]
	ancestorIdx := len(e.Ancestors) - 1
	for i := len(remaining) - 1; i >= 0; i-- {
		found := false
		for ancestorIdx >= 0 {
			if remaining[i].matches(e.Ancestors[ancestorIdx]) {
				found = true
				ancestorIdx--
				break
			}
			ancestorIdx--
		}
		if !found {
			return false
		}
	}
	return true
}

// specificity is the usual (ids, classes, tags) tuple, compared
// lexicographically.
func (sel Selector) specificity() [3]int {
	var spec [3]int
	for _, p := range sel.Parts {
		if p.ID != "" {
			spec[0]++
		}
		spec[1] += len(p.Classes)
		if p.Tag != "" && p.Tag != "*" {
			spec[2]++
		}
	}
	return spec
}

func less(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Match returns the declaration maps of every rule with a selector
// matching e, ordered from lowest to highest cascade precedence
// (specificity, then source order) so a caller can apply them in order
// and let later entries win.
func (sheet Stylesheet) Match(e ElementInfo) []map[string]string {
	type scored struct {
		spec  [3]int
		order int
		decls map[string]string
	}
	var hits []scored
	for i, rule := range sheet.Rules {
		for _, sel := range rule.Selectors {
			if sel.matches(e) {
				hits = append(hits, scored{spec: sel.specificity(), order: i, decls: rule.Declarations})
				break
			}
		}
	}
	// Stable insertion sort by (specificity, order): rule counts are
	// small, and this keeps the sort trivially deterministic.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0; j-- {
			a, b := hits[j-1], hits[j]
			if less(a.spec, b.spec) || (a.spec == b.spec && a.order < b.order) {
				break
			}
			hits[j-1], hits[j] = hits[j], hits[j-1]
		}
	}

	out := make([]map[string]string, len(hits))
	for i, h := range hits {
		out[i] = h.decls
	}
	return out
}
