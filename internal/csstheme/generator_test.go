package csstheme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const appSource = `
theme:
  light: {text: black}
  dark: {text: white}
  space: 4px
styles:
  - body:
      color: "{{ .theme.text }}"
      padding: "{{ .theme.space }}"
`

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(dir string) Config {
	return Config{
		SourceDir:     dir,
		Includes:      []string{"**/*.theme.yaml"},
		OutputFile:    filepath.Join(dir, "dist", "theme.css"),
		IncludeStyles: true,
		ThemeKeys:     "scope",
		CacheSize:     4,
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.theme.yaml", appSource)
	config := testConfig(dir)

	result, err := Generate(config, zaptest.NewLogger(t))
	require.NoError(t, err)

	want := ":root {\n  --space: 4px;\n  --text: black;\n}\n\n" +
		"@media (prefers-color-scheme: dark) {\n  :root {\n    --text: white;\n  }\n}\n\n" +
		"body {\n  color: var(--text);\n  padding: var(--space);\n}\n"

	data, err := os.ReadFile(config.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.RootVars)
	assert.Equal(t, 1, result.LightVars)
	assert.Equal(t, 1, result.DarkVars)
	assert.Equal(t, 1, result.Chunks)
	assert.Equal(t, len(want), result.Bytes)
	assert.False(t, result.Cached)
	assert.Empty(t, result.Warnings)
}

func TestGenerate_PrefixedComponents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a_button.theme.yaml", `
prefix: btn
vars:
  bg: {light: white, dark: black}
  radius: 4px
styles:
  .btn:
    background: "{{ .vars.bg }}"
    borderRadius: "{{ .vars.radius }}"
`)
	writeSource(t, dir, "b_card.theme.yaml", `
prefix: card
vars:
  radius: 8px
styles:
  .card:
    background: "{{ .components.btn.bg }}"
    borderRadius: "{{ .vars.radius }}"
`)
	config := testConfig(dir)

	_, err := Generate(config, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(config.OutputFile)
	require.NoError(t, err)
	want := ":root {\n  --btn-bg: white;\n}\n\n" +
		"@media (prefers-color-scheme: dark) {\n  :root {\n    --btn-bg: black;\n  }\n}\n\n" +
		".btn {\n  background: var(--btn-bg);\n  border-radius: var(--btn-radius, 4px);\n}\n\n" +
		".card {\n  background: var(--btn-bg);\n  border-radius: var(--card-radius, 8px);\n}\n"
	assert.Equal(t, want, string(data))
}

func TestGenerate_VarsStayWithTheirDocument(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.theme.yaml", `
vars:
  gap: 2px
styles:
  .a: {gap: "{{ .vars.gap }}"}
`)
	writeSource(t, dir, "b.theme.yaml", `
styles:
  .b: {gap: "{{ .vars.gap }}"}
`)

	_, err := Generate(testConfig(dir), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.theme.yaml: styles[0]")
}

func TestGenerate_ReusesCache(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.theme.yaml", appSource)
	config := testConfig(dir)
	g := NewGenerator(nil, 4)

	steps := []struct {
		includeStyles bool
		cached        bool
	}{
		{includeStyles: true, cached: false},
		{includeStyles: true, cached: true},
		{includeStyles: false, cached: false},
		{includeStyles: false, cached: true},
		{includeStyles: true, cached: false},
	}

	for i, step := range steps {
		config.IncludeStyles = step.includeStyles
		result, err := g.Generate(config)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.cached, result.Cached, "step %d", i)

		data, err := os.ReadFile(config.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, step.includeStyles, strings.Contains(string(data), "body {"), "step %d", i)
	}
}

func TestGenerate_ExcludedStylesWarn(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.theme.yaml", appSource)
	config := testConfig(dir)
	config.IncludeStyles = false

	result, err := Generate(config, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "excluded from output")
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := Generate(Config{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config: sourcedir failed validation for tag 'required'")
	})

	t.Run("unknown theme keys", func(t *testing.T) {
		config := testConfig(t.TempDir())
		config.ThemeKeys = "both"
		_, err := Generate(config, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "themekeys failed validation for tag 'oneof'")
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := Generate(testConfig(t.TempDir()), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSources))
	})

	t.Run("bad source", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "bad.theme.yaml", "nope: 1\n")
		_, err := Generate(testConfig(dir), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load failed")
	})

	t.Run("missing template key", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "bad.theme.yaml", "styles:\n  .a: {color: \"{{ .theme.nope }}\"}\n")
		_, err := Generate(testConfig(dir), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compile failed")
	})
}
