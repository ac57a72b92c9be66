package csstheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSelector(t *testing.T) {
	tests := []struct {
		key, parent, want string
	}{
		{"@media print", ".a", "@media print"},
		{"&.active", ".btn", ".btn.active"},
		{"&:hover", "a", "a:hover"},
		{"a, b", ".p", "a, b"},
		{":hover", ".btn", ".btn:hover"},
		{"::before", ".btn", ".btn::before"},
		{"> li", "ul", "ul> li"},
		{"+ p", "h1", "h1+ p"},
		{"~ p", "h1", "h1~ p"},
		{"span", ".a", ".a span"},
		{"span", "", "span"},
		{":hover", "", ":hover"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"|"+tt.parent, func(t *testing.T) {
			assert.Equal(t, tt.want, CreateSelector(tt.key, tt.parent))
		})
	}
}

func TestSplitSelectors(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitSelectors("a, b"))
	assert.Equal(t, []string{":is(a, b)", "c"}, SplitSelectors(":is(a, b), c"))
	assert.Equal(t, []string{`[data-x="1,2"]`}, SplitSelectors(`[data-x="1,2"]`))
	assert.Empty(t, SplitSelectors("  "))
}

func TestDistributeSelector(t *testing.T) {
	assert.Equal(t, "a c, b c", distributeSelector("c", "a, b"))
	assert.Equal(t, "a:hover, b:hover", distributeSelector(":hover", "a,b"))
	assert.Equal(t, ":is(a, b) c", distributeSelector("c", ":is(a, b)"))
}

func TestCombineNested(t *testing.T) {
	assert.Equal(t, "a .x, b .x", combineNested("a, b", []string{".x"}))
	assert.Equal(t, "a.on, a:focus", combineNested("a", []string{"&.on", ":focus"}))
	assert.Equal(t, ".x, .y", combineNested("", []string{"& .x", ".y"}))
}

func TestToKebabCase(t *testing.T) {
	assert.Equal(t, "background-color", ToKebabCase("backgroundColor"))
	assert.Equal(t, "-webkit-transition", ToKebabCase("WebkitTransition"))
	assert.Equal(t, "color", ToKebabCase("color"))
	assert.Equal(t, "--brandColor", ToKebabCase("--brandColor"))
	assert.Equal(t, "font-size", ToKebabCase("font-size"))
}

func TestPathSegment(t *testing.T) {
	assert.Equal(t, "primary-hover", pathSegment("primaryHover"))
	assert.Equal(t, "accent", pathSegment("Accent"))
}
