package csstheme

import (
	"strings"
	"unicode"
)

// isAdjacentKey reports whether key attaches to its parent without a space:
// pseudo-classes, pseudo-elements and the >, +, ~ combinators.
func isAdjacentKey(key string) bool {
	return strings.HasPrefix(key, ":") ||
		strings.HasPrefix(key, ">") ||
		strings.HasPrefix(key, "+") ||
		strings.HasPrefix(key, "~")
}

// CreateSelector combines a nesting key with its parent selector.
//
//	@media ...   -> unchanged
//	&.active     -> parent.active
//	"a, b"       -> unchanged (already combined)
//	:hover, > li -> parent:hover, parent> li
//	span         -> "parent span", or "span" without a parent
func CreateSelector(key, parent string) string {
	switch {
	case strings.HasPrefix(key, "@"):
		return key
	case strings.HasPrefix(key, "&"):
		return parent + key[1:]
	case strings.Contains(key, ","):
		return key
	case isAdjacentKey(key):
		return parent + key
	case parent == "":
		return key
	default:
		return parent + " " + key
	}
}

// SplitSelectors splits a selector list on top-level commas and trims each
// part. Commas inside parentheses or brackets, as in :is(a, b), do not split.
func SplitSelectors(list string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range list {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = appendSelector(parts, list[start:i])
				start = i + 1
			}
		}
	}
	return appendSelector(parts, list[start:])
}

func appendSelector(parts []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		parts = append(parts, s)
	}
	return parts
}

// hasSelectorList reports whether parent holds more than one selector.
func hasSelectorList(parent string) bool {
	return strings.Contains(parent, ",") && len(SplitSelectors(parent)) > 1
}

// distributeSelector applies CreateSelector to every selector of a comma
// separated parent so that nesting never lands inside a selector list.
func distributeSelector(key, parent string) string {
	if !hasSelectorList(parent) {
		return CreateSelector(key, parent)
	}
	parts := SplitSelectors(parent)
	combined := make([]string, len(parts))
	for i, p := range parts {
		combined[i] = CreateSelector(key, p)
	}
	return strings.Join(combined, ", ")
}

// combineNested cross-products the parent selector list with the targets of a
// nested-selector marker.
func combineNested(parent string, targets []string) string {
	var combined []string
	parents := SplitSelectors(parent)
	if len(parents) == 0 {
		for _, sel := range targets {
			if sel = strings.TrimSpace(strings.TrimPrefix(sel, "&")); sel != "" {
				combined = append(combined, sel)
			}
		}
		return strings.Join(combined, ", ")
	}
	for _, p := range parents {
		for _, sel := range targets {
			switch {
			case strings.HasPrefix(sel, "&"):
				combined = append(combined, p+sel[1:])
			case isAdjacentKey(sel):
				combined = append(combined, p+sel)
			default:
				combined = append(combined, p+" "+sel)
			}
		}
	}
	return strings.Join(combined, ", ")
}

// ToKebabCase converts a camelCase property name to kebab-case. A leading
// uppercase letter becomes a leading hyphen (WebkitTransition ->
// -webkit-transition). Custom properties (--name) are returned unchanged.
func ToKebabCase(s string) string {
	if strings.HasPrefix(s, "--") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pathSegment converts a theme key into a variable name segment.
func pathSegment(key string) string {
	return strings.TrimPrefix(ToKebabCase(key), "-")
}
