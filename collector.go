package csstheme

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ThemeKeys selects how light and dark keys in variable trees are read.
type ThemeKeys int

const (
	// ThemeKeysScope treats light/dark keys as theme scopes: their
	// descendants land in the light or dark partition and the key adds no
	// name segment.
	ThemeKeysScope ThemeKeys = iota
	// ThemeKeysLiteral treats light/dark as ordinary name segments.
	ThemeKeysLiteral
)

func (k ThemeKeys) String() string {
	switch k {
	case ThemeKeysLiteral:
		return "literal"
	default:
		return "scope"
	}
}

// ParseThemeKeys parses "scope" or "literal".
func ParseThemeKeys(s string) (ThemeKeys, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scope":
		return ThemeKeysScope, nil
	case "literal":
		return ThemeKeysLiteral, nil
	}
	return ThemeKeysScope, fmt.Errorf("unknown theme keys policy %q (want scope or literal)", s)
}

// VarOption configures one Theme or Vars call.
type VarOption func(*varOptions)

type varOptions struct {
	prefix string
}

// WithPrefix prepends prefix to every variable name. A prefix of exactly
// "light" or "dark" selects that theme for the whole tree instead.
func WithPrefix(prefix string) VarOption {
	return func(o *varOptions) {
		o.prefix = prefix
	}
}

// collector walks variable trees into the store and builds reference mirrors.
type collector struct {
	store *Store
	opt   *Optimizer
	keys  ThemeKeys
	theme bool // full theme mode: untagged leaves go to Root
	base  []string
	log   *zap.Logger

	count int
}

func (c *collector) themeKey(key string) (Partition, bool) {
	if c.keys == ThemeKeysLiteral {
		return "", false
	}
	return partitionFromKey(key)
}

// collect walks cfg and returns its reference mirror.
func (c *collector) collect(cfg *Node, opts ...VarOption) *Node {
	var o varOptions
	for _, opt := range opts {
		opt(&o)
	}

	var tag Partition
	prefix := strings.Trim(o.prefix, "-")
	if p, ok := c.themeKey(prefix); ok {
		tag = p
	} else if prefix != "" {
		c.base = []string{prefix}
	}

	mirror, _, _ := c.walk(cfg, nil, tag)
	c.log.Debug("collected variables",
		zap.Bool("theme", c.theme),
		zap.String("prefix", o.prefix),
		zap.Int("count", c.count))
	return mirror
}

// walk returns the mirror of node. When node holds leaves directly under
// light/dark keys, the reference of the enclosing path is returned as well.
func (c *collector) walk(node *Node, path []string, tag Partition) (*Node, string, bool) {
	mirror := NewNode()
	var leafRef string
	var hasLeaf bool

	node.Each(func(key string, value any) {
		if p, ok := c.themeKey(key); ok {
			switch v := value.(type) {
			case *Node:
				sub, ref, leaf := c.walk(v, path, p)
				sub.Each(func(k string, val any) { mirror.Set(k, val) })
				if leaf {
					leafRef, hasLeaf = ref, true
				}
			case *Nested:
				c.log.Debug("ignoring nested selector marker in variables", zap.String("key", key))
			default:
				if len(path) == 0 && len(c.base) == 0 {
					c.log.Debug("theme leaf without a name", zap.String("key", key))
					return
				}
				leafRef, hasLeaf = c.leaf(path, value, p), true
			}
			return
		}

		childPath := append(append([]string(nil), path...), pathSegment(key))
		switch v := value.(type) {
		case *Node:
			sub, ref, leaf := c.walk(v, childPath, tag)
			if leaf && sub.Len() == 0 {
				mirror.Set(key, ref)
				return
			}
			mirror.Set(key, sub)
		case *Nested:
			c.log.Debug("ignoring nested selector marker in variables", zap.String("key", key))
		default:
			mirror.Set(key, c.leaf(childPath, value, tag))
		}
	})
	return mirror, leafRef, hasLeaf
}

// leaf stores one variable and returns its reference text.
func (c *collector) leaf(path []string, value any, tag Partition) string {
	segments := append(append([]string(nil), c.base...), path...)
	ref := strings.Join(segments, "-")
	name := "--" + ref
	text := FormatValue(value)

	switch {
	case tag != "":
		c.store.Set(tag, name, text)
	case c.theme:
		c.store.Set(Root, name, text)
	}
	c.count++

	c.opt.Track(ref, text)
	lookup := tag
	if lookup == "" {
		lookup = Root
	}
	return c.opt.Resolve(ref, text, lookup)
}
