package webhook_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	var v any
	require.NoError(t, decoder.Decode(&v))
	return v
}

func path(segments ...any) jsonpath.Path {
	p := make(jsonpath.Path, len(segments))
	for i, s := range segments {
		switch v := s.(type) {
		case string:
			p[i] = jsonpath.Key(v)
		case int:
			p[i] = jsonpath.Index(v)
		}
	}
	return p
}

func TestField_Apply(t *testing.T) {
	input := `{"todos":[{"description":"Do the laundry"}]}`

	testCases := []struct {
		Name          string
		Field         webhook.Field
		Expected      string
		ExpectMissing bool
	}{
		{
			Name:     "present",
			Field:    webhook.Field{From: path("todos", 0, "description"), To: path("description")},
			Expected: `{"description":"Do the laundry"}`,
		},
		{
			Name:     "present_optional",
			Field:    webhook.Field{From: path("todos", 0, "description"), To: path("task", "text"), Optional: true},
			Expected: `{"task":{"text":"Do the laundry"}}`,
		},
		{
			Name:     "absent_optional",
			Field:    webhook.Field{From: path("todos", 1, "description"), To: path("description"), Optional: true},
			Expected: `{}`,
		},
		{
			Name:          "absent_required",
			Field:         webhook.Field{From: path("todos", 1, "description"), To: path("description")},
			ExpectMissing: true,
		},
		{
			Name:     "whole_document",
			Field:    webhook.Field{From: path(), To: path("original")},
			Expected: `{"original":{"todos":[{"description":"Do the laundry"}]}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			output := jsonpath.NewBuilder(map[string]any{})
			err := tc.Field.Apply(decode(t, input), output)
			if tc.ExpectMissing {
				var missing *webhook.MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, tc.Field.From, missing.Path)
				assert.Contains(t, err.Error(), `["todos",1,"description"]`)
				return
			}
			require.NoError(t, err)
			b, err := json.Marshal(output.Document())
			require.NoError(t, err)
			assert.JSONEq(t, tc.Expected, string(b))
		})
	}
}
