package jsonpath_test

import (
	"encoding/json"
	"testing"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestPath_UnmarshalYAML(t *testing.T) {
	testCases := []struct {
		Name        string
		Input       string
		Expected    jsonpath.Path
		ExpectError bool
	}{
		{
			Name:     "keys_and_indexes",
			Input:    `[todos, 0, description]`,
			Expected: jsonpath.Path{jsonpath.Key("todos"), jsonpath.Index(0), jsonpath.Key("description")},
		},
		{
			Name:     "json_flow_style",
			Input:    `["a", 12, "b"]`,
			Expected: jsonpath.Path{jsonpath.Key("a"), jsonpath.Index(12), jsonpath.Key("b")},
		},
		{
			Name:     "quoted_number_is_a_key",
			Input:    `["0"]`,
			Expected: jsonpath.Path{jsonpath.Key("0")},
		},
		{
			Name:     "empty",
			Input:    `[]`,
			Expected: jsonpath.Path{},
		},
		{
			Name:        "negative_index",
			Input:       `[a, -1]`,
			ExpectError: true,
		},
		{
			Name:        "float_index",
			Input:       `[a, 1.5]`,
			ExpectError: true,
		},
		{
			Name:        "boolean_segment",
			Input:       `[true]`,
			ExpectError: true,
		},
		{
			Name:        "null_segment",
			Input:       `[a, null]`,
			ExpectError: true,
		},
		{
			Name:        "nested_sequence",
			Input:       `[[a]]`,
			ExpectError: true,
		},
		{
			Name:        "not_a_sequence",
			Input:       `a.b.c`,
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var p jsonpath.Path
			err := yaml.Unmarshal([]byte(tc.Input), &p)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, p)
		})
	}
}

func TestPath_UnmarshalJSON(t *testing.T) {
	var p jsonpath.Path
	require.NoError(t, json.Unmarshal([]byte(`["todos",0,"description"]`), &p))
	assert.Equal(t, jsonpath.Path{jsonpath.Key("todos"), jsonpath.Index(0), jsonpath.Key("description")}, p)

	assert.Error(t, json.Unmarshal([]byte(`["a",-2]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`["a",0.5]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[{"a":1}]`), &p))
}

func TestPath_String(t *testing.T) {
	p := jsonpath.Path{jsonpath.Key("todos"), jsonpath.Index(0), jsonpath.Key(`de"sc`)}
	assert.Equal(t, `["todos",0,"de\"sc"]`, p.String())
	assert.Equal(t, `[]`, jsonpath.Path{}.String())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `["todos",0,"de\"sc"]`, string(b))
}

func TestSegment_Accessors(t *testing.T) {
	k, isKey := jsonpath.Key("a").Key()
	assert.True(t, isKey)
	assert.Equal(t, "a", k)
	_, isIndex := jsonpath.Key("a").Index()
	assert.False(t, isIndex)

	i, isIndex := jsonpath.Index(3).Index()
	assert.True(t, isIndex)
	assert.Equal(t, 3, i)
	_, isKey = jsonpath.Index(3).Key()
	assert.False(t, isKey)

	assert.Panics(t, func() { jsonpath.Index(-1) })
}
