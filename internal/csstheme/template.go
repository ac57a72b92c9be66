package csstheme

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	core "github.com/yacobolo/csstheme"
)

// templateData is what style values see while being rendered:
// {{ .theme.color.text }} for the shared theme, {{ .vars.space.s }} for the
// variables of the rendering document and {{ .components.card.radius }} for
// those of any prefixed document.
type templateData map[string]any

func newTemplateData(theme, vars map[string]any) templateData {
	return newComponentData(theme, vars, nil)
}

func newComponentData(theme, vars, components map[string]any) templateData {
	if components == nil {
		components = make(map[string]any)
	}
	return templateData{"theme": theme, "vars": vars, "components": components}
}

// renderTree expands every string value containing "{{" in place.
func renderTree(tree *core.Node, data templateData) error {
	var err error
	tree.Each(func(key string, value any) {
		if err != nil {
			return
		}
		switch v := value.(type) {
		case *core.Node:
			err = renderTree(v, data)
		case *core.Nested:
			err = renderTree(v.Styles, data)
		case string:
			var out string
			if out, err = renderValue(v, data); err == nil {
				tree.Set(key, out)
			} else {
				err = fmt.Errorf("%s: %w", key, err)
			}
		}
	})
	return err
}

func renderValue(text string, data templateData) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New("value").
		Funcs(sprig.FuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// mergeMirror deep-merges a reference mirror into dst. Later mirrors win.
func mergeMirror(dst map[string]any, mirror *core.Node) {
	mirror.Each(func(key string, value any) {
		sub, ok := value.(*core.Node)
		if !ok {
			dst[key] = value
			return
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = make(map[string]any)
			dst[key] = existing
		}
		mergeMirror(existing, sub)
	})
}
