package csstheme

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	c := NewCache(0)

	c.Set("k", ".a {\n  color: red;\n}\n", "")
	css, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, ".a {\n  color: red;\n}\n", css)
	assert.Empty(t, c.Metadata("k"))

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_MetadataStripped(t *testing.T) {
	c := NewCache(0)
	c.Set("k", ":root {\n}\n", NeedsStyles)

	css, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, ":root {\n}\n", css)
	assert.Equal(t, NeedsStyles, c.Metadata("k"))
}

func TestCache_ShouldRegenerate(t *testing.T) {
	c := NewCache(0)
	c.Set("full", "css", "")
	c.Set("vars-only", "css", NeedsStyles)

	assert.True(t, c.ShouldRegenerate("missing", false))
	assert.True(t, c.ShouldRegenerate("missing", true))
	assert.False(t, c.ShouldRegenerate("full", true))
	assert.False(t, c.ShouldRegenerate("vars-only", false))
	assert.True(t, c.ShouldRegenerate("vars-only", true))
}

func TestCache_LastWriteWins(t *testing.T) {
	c := NewCache(0)
	c.Set("k", "old", NeedsStyles)
	c.Set("k", "new", "")

	css, _ := c.Get("k")
	assert.Equal(t, "new", css)
	assert.Empty(t, c.Metadata("k"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_EvictsOldest(t *testing.T) {
	c := NewCache(2)
	c.Set("a", "1", "")
	c.Set("b", "2", "")
	c.Set("c", "3", "")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(0)
	c.Set("a", "1", "")
	c.Clear()
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.ShouldRegenerate("a", false))
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(8)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			c.Set(key, key, "")
			c.Get(key)
			c.ShouldRegenerate(key, true)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, c.Len())
}

func TestGenerateKey(t *testing.T) {
	a := tree("color", tree("text", "black", "bg", "white"))
	b := tree("color", tree("text", "black", "bg", "white"))
	reordered := tree("color", tree("bg", "white", "text", "black"))

	ka, err := GenerateKey(a)
	require.NoError(t, err)
	kb, err := GenerateKey(b)
	require.NoError(t, err)
	kr, err := GenerateKey(reordered)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
	assert.NotEqual(t, ka, kr)
	assert.Equal(t, `{"color":{"text":"black","bg":"white"}}`, ka)

	_, err = GenerateKey(func() {})
	assert.Error(t, err)
}
