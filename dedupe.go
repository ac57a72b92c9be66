package csstheme

import (
	"regexp"
	"strings"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// cssRule is a top-level block of CSS text.
type cssRule struct {
	start    int // first byte of the selector
	end      int // just past the closing brace
	selector string
	body     string
	nested   bool // body contains braces (at-rule blocks)
}

// mergeable reports whether the rule takes part in deduplication.
func (r cssRule) mergeable() bool {
	return !r.nested &&
		r.selector != "" &&
		!strings.HasPrefix(r.selector, "@") &&
		!strings.Contains(r.selector, ",")
}

// topLevelRules splits css into its top-level selector { body } blocks.
// Strings and comments are skipped when matching braces.
func topLevelRules(css string) []cssRule {
	var rules []cssRule
	segStart := 0
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '"', '\'':
			i = skipString(css, i)
		case '/':
			if strings.HasPrefix(css[i:], "/*") {
				i = skipComment(css, i)
				segStart = i + 1
			}
		case ';', '}':
			segStart = i + 1
		case '{':
			end, nested := matchBrace(css, i)
			sel := css[segStart:i]
			trimmed := strings.TrimSpace(sel)
			start := segStart + strings.Index(sel, trimmed)
			if trimmed == "" {
				start = i
			}
			rules = append(rules, cssRule{
				start:    start,
				end:      end,
				selector: trimmed,
				body:     css[i+1 : end-1],
				nested:   nested,
			})
			i = end - 1
			segStart = end
		}
	}
	return rules
}

// matchBrace returns the offset just past the brace closing the one at open,
// and whether another block was nested inside.
func matchBrace(css string, open int) (int, bool) {
	depth := 0
	nested := false
	for i := open; i < len(css); i++ {
		switch css[i] {
		case '"', '\'':
			i = skipString(css, i)
		case '/':
			if strings.HasPrefix(css[i:], "/*") {
				i = skipComment(css, i)
			}
		case '{':
			depth++
			if depth > 1 {
				nested = true
			}
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nested
			}
		}
	}
	return len(css), nested
}

func skipString(css string, i int) int {
	quote := css[i]
	for j := i + 1; j < len(css); j++ {
		switch css[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(css) - 1
}

func skipComment(css string, i int) int {
	if end := strings.Index(css[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 1
	}
	return len(css) - 1
}

// Dedupe merges top-level rules whose bodies are textually identical into one
// rule keyed by the comma-joined selector list, kept at the position of the
// first occurrence. Comparison is byte-exact: bodies differing only in
// whitespace are not merged. Runs of three or more newlines collapse to two.
func Dedupe(css string) string {
	out, _ := dedupe(css)
	return out
}

// dedupe returns the merged CSS and the number of rules removed.
func dedupe(css string) (string, int) {
	rules := topLevelRules(css)

	groups := make(map[string][]int)
	var bodies []string
	for i, r := range rules {
		if !r.mergeable() {
			continue
		}
		if _, ok := groups[r.body]; !ok {
			bodies = append(bodies, r.body)
		}
		groups[r.body] = append(groups[r.body], i)
	}

	replace := make(map[int]string)
	removed := 0
	for _, body := range bodies {
		idx := groups[body]
		var selectors []string
		seen := make(map[string]bool)
		for _, i := range idx {
			if !seen[rules[i].selector] {
				seen[rules[i].selector] = true
				selectors = append(selectors, rules[i].selector)
			}
		}
		if len(selectors) < 2 {
			continue
		}
		replace[idx[0]] = strings.Join(selectors, ", ") + " {" + body + "}"
		for _, i := range idx[1:] {
			replace[i] = ""
			removed++
		}
	}

	if len(replace) == 0 {
		return blankLines.ReplaceAllString(css, "\n\n"), 0
	}

	var b strings.Builder
	cursor := 0
	for i, r := range rules {
		repl, ok := replace[i]
		if !ok {
			continue
		}
		b.WriteString(css[cursor:r.start])
		b.WriteString(repl)
		cursor = r.end
	}
	b.WriteString(css[cursor:])
	return blankLines.ReplaceAllString(b.String(), "\n\n"), removed
}
