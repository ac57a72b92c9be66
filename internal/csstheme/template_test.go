package csstheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	core "github.com/yacobolo/csstheme"
)

func TestRenderTree(t *testing.T) {
	data := newTemplateData(
		map[string]any{"color": map[string]any{"text": "var(--color-text)"}},
		map[string]any{"pad": "var(--btn-pad, 4px)"},
	)

	hover := core.NewNode().Set("color", "{{ .theme.color.text }}")
	tree := core.NewNode().Set(".btn", core.NewNode().
		Set("padding", "{{ .vars.pad }} {{ .vars.pad }}").
		Set("textTransform", `{{ "UP" | lower }}`).
		Set("zIndex", 2).
		Set("inner", core.Nest([]string{":hover"}, hover)))

	require.NoError(t, renderTree(tree, data))

	assert.Equal(t, ".btn {\n  padding: var(--btn-pad, 4px) var(--btn-pad, 4px);\n  text-transform: up;\n  z-index: 2;\n}\n\n"+
		".btn:hover {\n  color: var(--color-text);\n}", core.Compile(tree, ""))
}

func TestRenderTree_MissingKey(t *testing.T) {
	data := newTemplateData(map[string]any{}, map[string]any{})
	tree := core.NewNode().Set(".a", core.NewNode().Set("color", "{{ .theme.nope }}"))

	err := renderTree(tree, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
}

func TestRenderTree_ParseError(t *testing.T) {
	tree := core.NewNode().Set("color", "{{ .theme.text")
	err := renderTree(tree, newTemplateData(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse template")
}

func TestMergeMirror(t *testing.T) {
	dst := make(map[string]any)
	mergeMirror(dst, core.NewNode().Set("color", core.NewNode().Set("text", "a")))
	mergeMirror(dst, core.NewNode().Set("color", core.NewNode().Set("bg", "b")).Set("gap", "c"))

	assert.Equal(t, map[string]any{
		"color": map[string]any{"text": "a", "bg": "b"},
		"gap":   "c",
	}, dst)
}

func TestRenderValue_Components(t *testing.T) {
	data := newComponentData(
		map[string]any{},
		map[string]any{"radius": "var(--card-radius, 8px)"},
		map[string]any{"btn": map[string]any{"radius": "var(--btn-radius, 4px)"}},
	)

	out, err := renderValue("{{ .vars.radius }} {{ .components.btn.radius }}", data)
	require.NoError(t, err)
	assert.Equal(t, "var(--card-radius, 8px) var(--btn-radius, 4px)", out)

	_, err = renderValue("{{ .components.chip.radius }}", data)
	require.Error(t, err)
}
