// Package graph decodes objects returned by a social-graph API into nodes
// that can be handed to core.Syncer.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Node is a single object returned by the Graph API
type Node struct {
	fields map[string]any
}

// NewNode wraps already decoded fields
func NewNode(fields map[string]any) *Node {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Node{fields: fields}
}

// AsArray returns a deep copy of the node fields
func (n *Node) AsArray() map[string]any {
	if n == nil {
		return map[string]any{}
	}
	copied, _ := deepCopy(n.fields).(map[string]any)
	return copied
}

// ID returns the node id as text, or "" when the node has none
func (n *Node) ID() string {
	value, ok := n.Field("id")
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// Field returns a top-level field
func (n *Node) Field(name string) (any, bool) {
	if n == nil {
		return nil, false
	}
	value, ok := n.fields[name]
	return value, ok
}

// Decode reads one Graph API object. Numbers are kept as json.Number so large
// ids are not rounded.
func Decode(r io.Reader) (*Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph node: %w", err)
	}

	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if err := responseError(fields); err != nil {
		return nil, err
	}
	return NewNode(fields), nil
}

// DecodeCollection reads a Graph API edge response of the form {"data": [...]}.
// Paging cursors are ignored.
func DecodeCollection(r io.Reader) ([]*Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph collection: %w", err)
	}

	envelope, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if err := responseError(envelope); err != nil {
		return nil, err
	}

	data, ok := envelope["data"]
	if !ok {
		return nil, fmt.Errorf("graph collection has no data field")
	}
	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("graph collection data is %T, expected a list", data)
	}

	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("graph collection item %d is %T, expected an object", i, item)
		}
		nodes = append(nodes, NewNode(fields))
	}
	return nodes, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to decode graph response: %w", err)
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("graph response is %T, expected an object", value)
	}
	return fields, nil
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(v))
		for key, item := range v {
			copied[key] = deepCopy(item)
		}
		return copied
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = deepCopy(item)
		}
		return copied
	default:
		return v
	}
}
