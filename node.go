package csstheme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Node is an insertion-ordered style or theme tree.
//
// Keys are selector fragments, at-rules, CSS property names or variable path
// segments. Values are property values (string, numbers, bool, nil, slices),
// nested rules (*Node) or nested-selector markers (*Nested).
//
// Order matters: it is the cascade order of the emitted CSS and the order of
// variables inside :root.
type Node struct {
	keys   []string
	values map[string]any
}

// NewNode creates an empty tree.
func NewNode() *Node {
	return &Node{values: make(map[string]any)}
}

// Set stores value under key and returns the node for chaining.
// Overwriting an existing key keeps its original position.
func (n *Node) Set(key string, value any) *Node {
	if n.values == nil {
		n.values = make(map[string]any)
	}
	if _, exists := n.values[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
	return n
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of keys.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Each calls fn for every entry in insertion order.
func (n *Node) Each(fn func(key string, value any)) {
	if n == nil {
		return
	}
	for _, k := range n.keys {
		fn(k, n.values[k])
	}
}

// ToMap converts the tree into nested maps, e.g. for template data.
// Ordering is lost; use it only where lookups are by key.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, n.Len())
	n.Each(func(key string, value any) {
		switch v := value.(type) {
		case *Node:
			out[key] = v.ToMap()
		default:
			out[key] = v
		}
	})
	return out
}

// MarshalJSON writes the tree as a JSON object preserving key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(n.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Nested is the nested-selector marker. Instead of using its own key as the
// selector, the compiler combines every parent selector branch with each of
// Selectors and compiles Styles under the combined list.
type Nested struct {
	Selectors []string
	Styles    *Node
}

// Nest builds a nested-selector marker.
func Nest(selectors []string, styles *Node) *Nested {
	return &Nested{Selectors: selectors, Styles: styles}
}

// MarshalJSON uses the reserved marker keys of the YAML source format.
func (n *Nested) MarshalJSON() ([]byte, error) {
	styles := n.Styles
	if styles == nil {
		styles = NewNode()
	}
	return json.Marshal(NewNode().Set("$nest", n.Selectors).Set("$styles", styles))
}

// FormatValue coerces a property value to its CSS text.
// Slices are joined with "," and nil becomes "null".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
