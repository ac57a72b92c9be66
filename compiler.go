package csstheme

import (
	"strings"

	"go.uber.org/zap"
)

// compiler turns style trees into flat CSS text.
type compiler struct {
	log *zap.Logger
}

func newCompiler(log *zap.Logger) *compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &compiler{log: log.Named("compiler")}
}

// Compile converts a style tree into CSS text under parentSelector.
//
// Direct properties of a selector level are grouped into one block; nested
// rules follow depth-first, separated by a blank line. A level with only
// nested rules emits no block of its own. The output never contains native
// CSS nesting.
func Compile(node *Node, parentSelector string) string {
	return newCompiler(nil).compile(node, parentSelector)
}

func (c *compiler) compile(node *Node, parent string) string {
	props, nested := c.collect(node, parent)
	return assemble(parent, props, nested)
}

// collect walks one level of node. It returns the property lines of parent
// and the compiled CSS of every nested rule, in key order.
func (c *compiler) collect(node *Node, parent string) (props, nested []string) {
	node.Each(func(key string, value any) {
		// $-prefixed keys are reserved marker keys
		if strings.HasPrefix(key, "$") {
			return
		}

		var css string
		switch v := value.(type) {
		case *Nested:
			css = c.compileNested(key, v, parent)
		case *Node:
			if strings.HasPrefix(key, "@") {
				css = c.compileAtRule(key, v, parent)
			} else {
				css = c.compile(v, distributeSelector(key, parent))
			}
		default:
			props = append(props, "  "+ToKebabCase(key)+": "+FormatValue(v)+";")
			return
		}
		if css != "" {
			nested = append(nested, css)
		}
	})
	return props, nested
}

func (c *compiler) compileNested(key string, marker *Nested, parent string) string {
	if marker == nil || marker.Styles.Len() == 0 || len(marker.Selectors) == 0 {
		c.log.Debug("nested selector marker has nothing to emit", zap.String("key", key))
		return ""
	}
	selector := combineNested(parent, marker.Selectors)
	if selector == "" {
		return ""
	}
	return c.compile(marker.Styles, selector)
}

// compileAtRule wraps the rules of an at-rule block. Children keep the
// enclosing selector; at top level, direct properties become the at-rule's
// own declarations (@font-face, @page).
func (c *compiler) compileAtRule(rule string, node *Node, parent string) string {
	props, nested := c.collect(node, parent)

	var parts []string
	if parent == "" {
		if len(props) > 0 {
			parts = append(parts, strings.Join(props, "\n"))
		}
		for _, n := range nested {
			parts = append(parts, indent(n))
		}
	} else if body := assemble(parent, props, nested); body != "" {
		parts = append(parts, indent(body))
	}

	if len(parts) == 0 {
		return ""
	}
	return rule + " {\n" + strings.Join(parts, "\n\n") + "\n}"
}

func assemble(selector string, props, nested []string) string {
	var b strings.Builder
	if len(props) > 0 {
		b.WriteString(selector)
		b.WriteString(" {\n")
		b.WriteString(strings.Join(props, "\n"))
		b.WriteString("\n}")
	}
	if len(nested) > 0 {
		if len(props) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(nested, "\n\n"))
	}
	return b.String()
}

// indent prefixes every non-empty line with two spaces.
func indent(css string) string {
	lines := strings.Split(css, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
