package csstheme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	core "github.com/yacobolo/csstheme"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const buttonSource = `
prefix: btn
theme:
  color:
    text: {light: black, dark: white}
vars:
  pad: 4px
styles:
  - .btn:
      padding: "{{ .vars.pad }}"
      inner:
        $nest: [":hover"]
        $styles: {color: red}
  - selectors: [h1, h2]
    styles: {margin: 0}
---
styles:
  .x: {color: red}
`

func TestDecodeDocuments(t *testing.T) {
	docs, err := decodeDocuments(strings.NewReader(buttonSource), "button.theme.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, "button.theme.yaml", doc.Path)
	assert.Equal(t, "btn", doc.Prefix)
	assert.Equal(t, []string{"color"}, doc.Theme.Keys())
	pad, _ := doc.Vars.Get("pad")
	assert.Equal(t, "4px", pad)

	require.Len(t, doc.Styles, 2)
	assert.Empty(t, doc.Styles[0].Selectors)
	btn, ok := doc.Styles[0].Styles.Get(".btn")
	require.True(t, ok)
	inner, ok := btn.(*core.Node).Get("inner")
	require.True(t, ok)
	nested, ok := inner.(*core.Nested)
	require.True(t, ok)
	assert.Equal(t, []string{":hover"}, nested.Selectors)
	assert.Equal(t, []string{"color"}, nested.Styles.Keys())

	assert.Equal(t, []string{"h1", "h2"}, doc.Styles[1].Selectors)
	margin, _ := doc.Styles[1].Styles.Get("margin")
	assert.Equal(t, 0, margin)

	require.Len(t, docs[1].Styles, 1)
	assert.Equal(t, []string{".x"}, docs[1].Styles[0].Styles.Keys())
}

func TestDecodeDocuments_Aliases(t *testing.T) {
	src := `
theme:
  base: &base 4px
  gap: *base
`
	docs, err := decodeDocuments(strings.NewReader(src), "a.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	gap, _ := docs[0].Theme.Get("gap")
	assert.Equal(t, "4px", gap)
}

func TestDecodeDocuments_Empty(t *testing.T) {
	docs, err := decodeDocuments(strings.NewReader(""), "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeDocuments_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown key",
			src:  "unknown: 1\n",
			want: `line 1 column 1: unknown key "unknown"`,
		},
		{
			name: "not a mapping",
			src:  "- a\n",
			want: "source document must be a mapping",
		},
		{
			name: "theme must be a mapping",
			src:  "theme: [a]\n",
			want: "theme must be a mapping",
		},
		{
			name: "styles entry must be a mapping",
			src:  "styles:\n  - plain\n",
			want: "style entry must be a mapping",
		},
		{
			name: "nested lists",
			src:  "styles:\n  .a: {fontFamily: [[a]]}\n",
			want: "list values must be scalars",
		},
		{
			name: "invalid yaml",
			src:  "theme: {a: [}\n",
			want: "parse yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDocuments(strings.NewReader(tt.src), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFiles_CollectsErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.theme.yaml")
	bad := filepath.Join(dir, "bad.theme.yaml")
	require.NoError(t, os.WriteFile(good, []byte("theme: {gap: 4px}\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("nope: 1\n"), 0644))
	missing := filepath.Join(dir, "missing.theme.yaml")

	docs, err := loadFiles([]string{good, bad, missing}, zap.NewNop())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), bad)
	require.Len(t, docs, 1)
	assert.Equal(t, good, docs[0].Path)
}
