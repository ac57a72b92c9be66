package csstheme

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// NeedsStyles is the metadata marker of an entry generated without styles.
const NeedsStyles = "NEEDS_STYLES"

const (
	metaOpen  = "<!--"
	metaClose = "-->"
)

// Cache memoizes generated CSS by configuration key.
//
// Metadata is stored as a trailing <!--metadata--> comment and stripped on
// Get. A Cache is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]string
	order      []string
	maxEntries int
}

// NewCache creates a cache holding at most maxEntries entries, evicting the
// oldest write first. Zero means unbounded.
func NewCache(maxEntries int) *Cache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Cache{
		entries:    make(map[string]string),
		maxEntries: maxEntries,
	}
}

// Get returns the CSS cached under key without its metadata.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	raw, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	css, _, _ := strings.Cut(raw, metaOpen)
	return css, true
}

// Metadata returns the metadata stored with key, if any.
func (c *Cache) Metadata(key string) string {
	c.mu.RLock()
	raw := c.entries[key]
	c.mu.RUnlock()

	_, meta, found := strings.Cut(raw, metaOpen)
	if !found {
		return ""
	}
	return strings.TrimSuffix(meta, metaClose)
}

// Set stores css under key. The most recent write wins.
func (c *Cache) Set(key, css, metadata string) {
	value := css
	if metadata != "" {
		value = css + metaOpen + metadata + metaClose
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = value

	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// ShouldRegenerate reports whether the CSS for key must be generated again:
// it is absent, or it was generated without styles and styles are requested.
func (c *Cache) ShouldRegenerate(key string, includeStyles bool) bool {
	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return true
	}
	return includeStyles && c.Metadata(key) == NeedsStyles
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
	c.order = nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GenerateKey derives a cache key from the JSON serialization of v.
// Structurally identical values with the same key order yield the same key.
func GenerateKey(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("generate cache key: %w", err)
	}
	return string(data), nil
}
