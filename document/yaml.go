package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode converts a parsed YAML node into a Document. The node must be a
// mapping (or a document node wrapping one); key order is preserved.
func Decode(node *yaml.Node) (*Document, error) {
	node = deref(node)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) != 1 {
			return nil, fmt.Errorf("yaml document has %d root nodes, want 1", len(node.Content))
		}
		node = deref(node.Content[0])
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}
	return decodeMapping(node)
}

// DecodeStream reads a multi-document YAML stream and returns one Document
// per sub-document. Empty sub-documents are skipped.
func DecodeStream(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	var docs []*Document
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml stream: %w", err)
		}
		if isEmptyDocument(&node) {
			continue
		}
		doc, err := Decode(&node)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

// MarshalYAML renders the document back to YAML in key order.
func (d *Document) MarshalYAML() (any, error) {
	return d.toNode()
}

func decodeMapping(node *yaml.Node) (*Document, error) {
	doc := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := deref(node.Content[i])
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, fmt.Errorf("line %d: mapping key: %w", keyNode.Line, err)
		}
		value, err := decodeValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		doc.Set(key, value)
	}
	return doc, nil
}

func decodeValue(node *yaml.Node) (Value, error) {
	node = deref(node)
	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		list := make(List, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: scalar: %w", node.Line, err)
		}
		return Scalar{V: v}, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %s", node.Line, kindName(node.Kind))
	}
}

func (d *Document) toNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range d.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}
		valueNode, err := valueToNode(d.values[key])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func valueToNode(v Value) (*yaml.Node, error) {
	switch tv := v.(type) {
	case *Document:
		return tv.toNode()
	case List:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range tv {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case Scalar:
		node := &yaml.Node{}
		if err := node.Encode(tv.V); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// isEmptyDocument reports whether a stream entry carries no content, e.g.
// a bare "---" separator.
func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return true
		}
		if len(node.Content) == 1 {
			child := node.Content[0]
			return child.Kind == yaml.ScalarNode && child.Tag == "!!null"
		}
	}
	return false
}

// deref follows alias nodes so anchors behave like their targets.
func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
