package jsonpath

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/copystructure"
	"github.com/pkg/errors"
)

// ConflictError reports a write whose destination cannot be reached without
// replacing an existing value of an incompatible kind.
type ConflictError struct {
	// Path is the full destination of the write.
	Path Path
	// At is the prefix of Path holding the incompatible value.
	At Path
	// Found describes the kind of the incompatible value.
	Found string
	// Want describes the container kind the next segment requires.
	Want string
}

func (e *ConflictError) Error() string {
	if len(e.Path) == 0 {
		return "structural conflict: cannot replace the document root"
	}
	return fmt.Sprintf("structural conflict writing %s: %s holds %s, not %s", e.Path, e.At, e.Found, e.Want)
}

// MaxIndex is the largest array index a write may target.
const MaxIndex = 1<<16 - 1

// IndexRangeError reports a write to an array index above MaxIndex.
type IndexRangeError struct {
	Path  Path
	Index int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("index %d in %s exceeds the maximum of %d", e.Index, e.Path, MaxIndex)
}

// padding marks slots the Builder created but nothing has written yet: array
// elements below a written index and members that do not exist.
type padding struct{}

var unset any = padding{}

// Builder accumulates writes into one document.
//
// Intermediate objects and arrays are created on demand and arrays are padded
// up to the target index. Padding slots may later become containers. Any other
// value in the way, including a null that was written or was already present in
// the initial root, yields a *ConflictError. The final segment is overwritten.
type Builder struct {
	root any
}

// NewBuilder starts a document from root, which may be nil.
func NewBuilder(root any) *Builder {
	if root == nil {
		root = unset
	}
	return &Builder{root: root}
}

// Set writes value at p. value is deep-copied, so writing the same value to
// several destinations never shares containers between them. An empty path
// yields a *ConflictError and an index above MaxIndex an *IndexRangeError. On a
// conflict the document may hold partially created containers.
func (b *Builder) Set(p Path, value any) error {
	if len(p) == 0 {
		return &ConflictError{Path: p}
	}
	for _, segment := range p {
		if i, ok := segment.Index(); ok && i > MaxIndex {
			return &IndexRangeError{Path: p, Index: i}
		}
	}
	copied, err := clone(value)
	if err != nil {
		return err
	}
	b.root, err = set(b.root, p, 0, copied)
	return err
}

// Document returns the built document with padding turned into nulls. Later
// writes see those nulls as values.
func (b *Builder) Document() any {
	b.root = fill(b.root)
	return b.root
}

// Set performs a single Builder write on root and returns the updated root.
// root is modified in place.
func Set(root any, p Path, value any) (any, error) {
	b := NewBuilder(root)
	err := b.Set(p, value)
	return b.Document(), err
}

func set(node any, p Path, depth int, value any) (any, error) {
	if depth == len(p) {
		return value, nil
	}

	segment := p[depth]
	if i, ok := segment.Index(); ok {
		var array []any
		switch v := node.(type) {
		case padding:
		case []any:
			array = v
		default:
			return node, conflict(p, depth, v, "an array")
		}
		for len(array) <= i {
			array = append(array, unset)
		}
		child, err := set(array[i], p, depth+1, value)
		if err != nil {
			return array, err
		}
		array[i] = child
		return array, nil
	}

	key, _ := segment.Key()
	var object map[string]any
	switch v := node.(type) {
	case padding:
		object = make(map[string]any)
	case map[string]any:
		object = v
	default:
		return node, conflict(p, depth, v, "an object")
	}
	current, found := object[key]
	if !found {
		current = unset
	}
	child, err := set(current, p, depth+1, value)
	if err != nil {
		return object, err
	}
	object[key] = child
	return object, nil
}

func fill(node any) any {
	switch v := node.(type) {
	case padding:
		return nil
	case map[string]any:
		for k, child := range v {
			v[k] = fill(child)
		}
	case []any:
		for i, child := range v {
			v[i] = fill(child)
		}
	}
	return node
}

func conflict(p Path, depth int, found any, want string) *ConflictError {
	return &ConflictError{
		Path:  p,
		At:    p[:depth],
		Found: kindOf(found),
		Want:  want,
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("a %T", v)
	}
}

func clone(value any) (any, error) {
	switch value.(type) {
	case map[string]any, []any:
		copied, err := copystructure.Copy(value)
		if err != nil {
			return nil, errors.Wrap(err, "failed to copy value")
		}
		return copied, nil
	default:
		return value, nil
	}
}
