package csstheme

import (
	"errors"
	"fmt"
	"io"
	"os"

	core "github.com/yacobolo/csstheme"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Marker keys of a nested-selector entry in style trees.
const (
	keyNest   = "$nest"
	keyStyles = "$styles"
)

// StyleEntry is one entry of a document's styles list. With Selectors set,
// Styles apply to the comma-joined selector list.
type StyleEntry struct {
	Selectors []string   `json:"selectors,omitempty"`
	Styles    *core.Node `json:"styles"`
}

// Document is one YAML source document
type Document struct {
	Path   string       `json:"path"`
	Prefix string       `json:"prefix,omitempty"`
	Theme  *core.Node   `json:"theme,omitempty"`
	Vars   *core.Node   `json:"vars,omitempty"`
	Styles []StyleEntry `json:"styles,omitempty"`
}

// loadFiles reads every source file. Files that fail to load are reported
// together; the documents of the other files are still returned.
func loadFiles(files []string, log *zap.Logger) ([]*Document, error) {
	var docs []*Document
	var errs error

	for _, file := range files {
		log.Debug("loading source", zap.String("file", file))

		fileDocs, err := loadFile(file)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		docs = append(docs, fileDocs...)
	}

	return docs, errs
}

// loadFile reads all YAML documents of a source file
func loadFile(path string) ([]*Document, error) {
	// #nosec G304 - path comes from trusted configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	defer f.Close()

	docs, err := decodeDocuments(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// decodeDocuments decodes a stream of --- separated source documents
func decodeDocuments(r io.Reader, path string) ([]*Document, error) {
	dec := yaml.NewDecoder(r)

	var docs []*Document
	for {
		var root yaml.Node
		err := dec.Decode(&root)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}

		doc, err := decodeDocument(&root)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		doc.Path = path
		docs = append(docs, doc)
	}
}

func decodeDocument(root *yaml.Node) (*Document, error) {
	n := resolve(root)
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = resolve(n.Content[0])
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, posError(n, "source document must be a mapping")
	}

	doc := &Document{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolve(n.Content[i+1])

		var err error
		switch key.Value {
		case "prefix":
			if value.Kind != yaml.ScalarNode {
				return nil, posError(value, "prefix must be a string")
			}
			doc.Prefix = value.Value
		case "theme":
			doc.Theme, err = decodeVariables(value, "theme")
		case "vars":
			doc.Vars, err = decodeVariables(value, "vars")
		case "styles":
			doc.Styles, err = decodeStyles(value)
		default:
			return nil, posError(key, fmt.Sprintf("unknown key %q", key.Value))
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func decodeVariables(n *yaml.Node, section string) (*core.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, posError(n, section+" must be a mapping")
	}
	return decodeTree(n)
}

// decodeStyles accepts a single style tree or a list of style entries
func decodeStyles(n *yaml.Node) ([]StyleEntry, error) {
	switch n.Kind {
	case yaml.MappingNode:
		entry, err := decodeStyleEntry(n)
		if err != nil {
			return nil, err
		}
		return []StyleEntry{entry}, nil
	case yaml.SequenceNode:
		entries := make([]StyleEntry, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil, posError(item, "style entry must be a mapping")
			}
			entry, err := decodeStyleEntry(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}
	return nil, posError(n, "styles must be a mapping or a list")
}

// decodeStyleEntry recognizes the {selectors: [...], styles: {...}} shorthand
func decodeStyleEntry(n *yaml.Node) (StyleEntry, error) {
	if sels, styles, ok := selectorsShorthand(n); ok {
		selectors, err := decodeStrings(sels)
		if err != nil {
			return StyleEntry{}, err
		}
		tree, err := decodeTree(styles)
		if err != nil {
			return StyleEntry{}, err
		}
		return StyleEntry{Selectors: selectors, Styles: tree}, nil
	}

	tree, err := decodeTree(n)
	if err != nil {
		return StyleEntry{}, err
	}
	return StyleEntry{Styles: tree}, nil
}

func selectorsShorthand(n *yaml.Node) (sels, styles *yaml.Node, ok bool) {
	if len(n.Content) != 4 {
		return nil, nil, false
	}
	for i := 0; i < 4; i += 2 {
		value := resolve(n.Content[i+1])
		switch n.Content[i].Value {
		case "selectors":
			sels = value
		case "styles":
			styles = value
		}
	}
	if sels == nil || styles == nil || sels.Kind != yaml.SequenceNode || styles.Kind != yaml.MappingNode {
		return nil, nil, false
	}
	return sels, styles, true
}

// decodeTree converts a YAML mapping into an ordered tree. A mapping holding
// the $nest key becomes a nested-selector marker.
func decodeTree(n *yaml.Node) (*core.Node, error) {
	tree := core.NewNode()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, posError(key, "keys must be scalars")
		}

		v, err := decodeValue(value)
		if err != nil {
			return nil, err
		}
		tree.Set(key.Value, v)
	}
	return tree, nil
}

func decodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		if nest := mappingValue(n, keyNest); nest != nil {
			return decodeNested(n, nest)
		}
		return decodeTree(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				return nil, posError(item, "list values must be scalars")
			}
			v, err := decodeScalar(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	}
	return nil, posError(n, "unsupported value")
}

func decodeNested(n, nest *yaml.Node) (*core.Nested, error) {
	selectors, err := decodeStrings(nest)
	if err != nil {
		return nil, err
	}
	styles := core.NewNode()
	if s := mappingValue(n, keyStyles); s != nil {
		if s.Kind != yaml.MappingNode {
			return nil, posError(s, keyStyles+" must be a mapping")
		}
		if styles, err = decodeTree(s); err != nil {
			return nil, err
		}
	}
	return core.Nest(selectors, styles), nil
}

func decodeScalar(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, posError(n, err.Error())
	}
	return v, nil
}

func decodeStrings(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, posError(n, "expected a list of selectors")
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode {
			return nil, posError(item, "selectors must be strings")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

// resolve follows YAML aliases
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func posError(n *yaml.Node, msg string) error {
	return fmt.Errorf("line %d column %d: %s", n.Line, n.Column, msg)
}
