package csstheme

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// VarReference is a var() call with a fallback found in CSS text.
type VarReference struct {
	Name     string // reference name without the leading "--"
	Fallback string // trimmed default value
	Start    int    // byte offset of "var("
	End      int    // byte offset just past the closing ")"
}

type lexToken struct {
	tt     css.TokenType
	text   string
	offset int
}

// lexCSS tokenizes text, keeping the byte offset of every token.
func lexCSS(text string) []lexToken {
	lexer := css.NewLexer(parse.NewInputString(text))
	var tokens []lexToken
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		tokens = append(tokens, lexToken{tt: tt, text: string(data), offset: offset})
		offset += len(data)
	}
	return tokens
}

// FindVarReferences returns every var(--name, fallback) occurrence in text,
// ordered by position. References nested inside another reference's fallback
// are reported as well.
func FindVarReferences(text string) []VarReference {
	tokens := lexCSS(text)

	var refs []VarReference
	for i, tok := range tokens {
		if tok.tt != css.FunctionToken || !strings.EqualFold(tok.text, "var(") {
			continue
		}
		if ref, ok := parseVarCall(text, tokens, i); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// parseVarCall reads the var() call opened at tokens[start]. Calls without a
// fallback, or with an empty one, are not reported.
func parseVarCall(text string, tokens []lexToken, start int) (VarReference, bool) {
	i := skipWhitespace(tokens, start+1)
	if i >= len(tokens) || !strings.HasPrefix(tokens[i].text, "--") {
		return VarReference{}, false
	}
	if tokens[i].tt != css.IdentToken && tokens[i].tt != css.CustomPropertyNameToken {
		return VarReference{}, false
	}
	name := strings.TrimPrefix(tokens[i].text, "--")

	i = skipWhitespace(tokens, i+1)
	if i >= len(tokens) || tokens[i].tt != css.CommaToken {
		return VarReference{}, false
	}
	fallbackStart := tokens[i].offset + len(tokens[i].text)

	depth := 1
	for i++; i < len(tokens); i++ {
		switch tokens[i].tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				fallback := strings.TrimSpace(text[fallbackStart:tokens[i].offset])
				if fallback == "" {
					return VarReference{}, false
				}
				return VarReference{
					Name:     name,
					Fallback: fallback,
					Start:    tokens[start].offset,
					End:      tokens[i].offset + len(tokens[i].text),
				}, true
			}
		}
	}
	return VarReference{}, false
}

func skipWhitespace(tokens []lexToken, i int) int {
	for i < len(tokens) && (tokens[i].tt == css.WhitespaceToken || tokens[i].tt == css.CommentToken) {
		i++
	}
	return i
}

// replaceVarReferences rewrites references for which replace returns true.
// A rewritten reference swallows any references nested in its fallback.
func replaceVarReferences(text string, replace func(ref VarReference) (string, bool)) string {
	refs := FindVarReferences(text)
	if len(refs) == 0 {
		return text
	}

	var b strings.Builder
	cursor := 0
	for _, ref := range refs {
		if ref.Start < cursor {
			continue
		}
		repl, ok := replace(ref)
		if !ok {
			continue
		}
		b.WriteString(text[cursor:ref.Start])
		b.WriteString(repl)
		cursor = ref.End
	}
	if cursor == 0 {
		return text
	}
	b.WriteString(text[cursor:])
	return b.String()
}
