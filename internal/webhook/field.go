package webhook

import (
	"fmt"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
)

// Field copies the value found at From in the incoming document to To in the
// forwarded document.
type Field struct {
	From     jsonpath.Path
	To       jsonpath.Path
	Optional bool
}

// MissingFieldError is returned when a required field has no value at its source path.
type MissingFieldError struct {
	Path jsonpath.Path
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field at %s", e.Path)
}

// Apply reads f.From from input and writes it into output at f.To. An absent
// optional field leaves output untouched.
func (f Field) Apply(input any, output *jsonpath.Builder) error {
	value, found := jsonpath.Get(input, f.From)
	if !found {
		if f.Optional {
			return nil
		}
		return &MissingFieldError{Path: f.From}
	}
	return output.Set(f.To, value)
}
