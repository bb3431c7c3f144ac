// Package jsonpath addresses values inside decoded JSON documents.
//
// A document is the result of decoding JSON into an `any`: objects are
// map[string]any, arrays are []any, and everything else is a scalar. A Path is an
// ordered list of segments, each either an object key or an array index.
package jsonpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment selecting the object member named k.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns a segment selecting the array element at position i.
// It panics if i is negative.
func Index(i int) Segment {
	if i < 0 {
		panic(fmt.Sprintf("jsonpath: negative index %d", i))
	}
	return Segment{index: i, isIndex: true}
}

// Key reports the member name of a key segment.
func (s Segment) Key() (string, bool) {
	return s.key, !s.isIndex
}

// Index reports the position of an index segment.
func (s Segment) Index() (int, bool) {
	return s.index, s.isIndex
}

// String renders the segment the way it is written in configuration.
func (s Segment) String() string {
	b, _ := s.MarshalJSON()
	return string(b)
}

// MarshalJSON encodes key segments as strings and index segments as numbers.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.isIndex {
		return json.Marshal(s.index)
	}
	return json.Marshal(s.key)
}

// UnmarshalJSON accepts a string or a non-negative whole number.
func (s *Segment) UnmarshalJSON(b []byte) error {
	var raw any
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*s = Key(v)
		return nil
	case json.Number:
		i, err := v.Int64()
		if err != nil || i < 0 {
			return &SegmentError{Value: v.String()}
		}
		*s = Index(int(i))
		return nil
	default:
		return &SegmentError{Value: string(b)}
	}
}

// UnmarshalYAML accepts a string scalar or a non-negative integer scalar.
func (s *Segment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &SegmentError{Value: describeNode(node), Line: node.Line}
	}
	switch node.ShortTag() {
	case "!!str":
		*s = Key(node.Value)
		return nil
	case "!!int":
		var i int
		if err := node.Decode(&i); err != nil || i < 0 {
			return &SegmentError{Value: node.Value, Line: node.Line}
		}
		*s = Index(i)
		return nil
	default:
		return &SegmentError{Value: node.Value, Line: node.Line}
	}
}

// Path is an ordered sequence of segments. The empty path addresses the whole document.
type Path []Segment

// String renders the path in its JSON array form, e.g. ["todos",0,"description"].
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// UnmarshalYAML requires a sequence node whose items are valid segments.
func (p *Path) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: path must be a sequence of keys and indexes, got %s", node.Line, describeNode(node))
	}
	path := make(Path, len(node.Content))
	for i, item := range node.Content {
		if err := path[i].UnmarshalYAML(item); err != nil {
			return err
		}
	}
	*p = path
	return nil
}

// SegmentError reports a raw path element that is neither a string nor a non-negative integer.
type SegmentError struct {
	Value string
	Line  int
}

func (e *SegmentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: path segment %s must be a string or a non-negative integer", e.Line, e.Value)
	}
	return fmt.Sprintf("path segment %s must be a string or a non-negative integer", e.Value)
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	default:
		if node.ShortTag() == "!!null" {
			return "null"
		}
		return node.Value
	}
}
