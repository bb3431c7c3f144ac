// Package webhook holds the named webhook definitions and the field mappings
// that turn an incoming document into the forwarded one.
package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
)

// Entry is a single configured webhook.
type Entry struct {
	// Name is the registry key, matched against the last segment of the request path.
	Name string
	// ForwardURL receives the generated document.
	ForwardURL string
	// ForwardMethod is the HTTP method of the forwarded request.
	ForwardMethod string
	// Fields are applied in order.
	Fields []Field
	// Reply, when set, is returned to the caller instead of the upstream body
	// after a successful forward.
	Reply json.RawMessage
}

// Method returns the configured forward method, defaulting to POST.
func (e *Entry) Method() string {
	if e.ForwardMethod == "" {
		return http.MethodPost
	}
	return e.ForwardMethod
}

// Transform applies every field of the entry to input and returns the generated
// document. The first failing field aborts the transformation.
func (e *Entry) Transform(input any) (map[string]any, error) {
	output := jsonpath.NewBuilder(make(map[string]any))
	for _, field := range e.Fields {
		if err := field.Apply(input, output); err != nil {
			return nil, err
		}
	}
	// Set never replaces the root, so the document is still the object created above.
	return output.Document().(map[string]any), nil
}
