package csstheme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindVarReferences(t *testing.T) {
	text := "color: var(--text, black);"
	refs := FindVarReferences(text)
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, "text", ref.Name)
	assert.Equal(t, "black", ref.Fallback)
	assert.Equal(t, strings.Index(text, "var("), ref.Start)
	assert.Equal(t, strings.Index(text, ";"), ref.End)
	assert.Equal(t, "var(--text, black)", text[ref.Start:ref.End])
}

func TestFindVarReferences_WithoutFallback(t *testing.T) {
	assert.Empty(t, FindVarReferences("color: var(--text);"))
	assert.Empty(t, FindVarReferences("color: red;"))
}

func TestFindVarReferences_EmptyFallback(t *testing.T) {
	assert.Empty(t, FindVarReferences("color: var(--text,);"))
	assert.Empty(t, FindVarReferences("color: var(--text,  );"))

	refs := FindVarReferences("a: var(--x,); b: var(--y, 1px);")
	require.Len(t, refs, 1)
	assert.Equal(t, "y", refs[0].Name)
}

func TestFindVarReferences_Nested(t *testing.T) {
	refs := FindVarReferences("var(--a, var(--b, red))")
	require.Len(t, refs, 2)
	assert.Equal(t, "a", refs[0].Name)
	assert.Equal(t, "var(--b, red)", refs[0].Fallback)
	assert.Equal(t, "b", refs[1].Name)
	assert.Equal(t, "red", refs[1].Fallback)
}

func TestFindVarReferences_FunctionFallback(t *testing.T) {
	refs := FindVarReferences("box-shadow: var(--shadow, 0 1px rgba(0, 0, 0, 0.2));")
	require.Len(t, refs, 1)
	assert.Equal(t, "0 1px rgba(0, 0, 0, 0.2)", refs[0].Fallback)
}

func TestReplaceVarReferences(t *testing.T) {
	text := "a: var(--x, 1px); b: var(--y, 2px);"
	out := replaceVarReferences(text, func(ref VarReference) (string, bool) {
		if ref.Name == "x" {
			return "var(--x)", true
		}
		return "", false
	})
	assert.Equal(t, "a: var(--x); b: var(--y, 2px);", out)

	same := replaceVarReferences(text, func(VarReference) (string, bool) { return "", false })
	assert.Equal(t, text, same)
}
