package jsonpath_test

import (
	"encoding/json"
	"testing"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	Path  jsonpath.Path
	Value any
}

func apply(t *testing.T, writes ...write) (any, error) {
	t.Helper()
	b := jsonpath.NewBuilder(map[string]any{})
	for _, w := range writes {
		if err := b.Set(w.Path, w.Value); err != nil {
			return b.Document(), err
		}
	}
	return b.Document(), nil
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestSet(t *testing.T) {
	a, b, c := jsonpath.Key("a"), jsonpath.Key("b"), jsonpath.Key("c")

	testCases := []struct {
		Name     string
		Writes   []write
		Expected string
	}{
		{
			Name:     "single_key",
			Writes:   []write{{jsonpath.Path{a}, "x"}},
			Expected: `{"a":"x"}`,
		},
		{
			Name:     "nested_objects",
			Writes:   []write{{jsonpath.Path{a, b, c}, 1}},
			Expected: `{"a":{"b":{"c":1}}}`,
		},
		{
			Name:     "sibling_keys_merge",
			Writes:   []write{{jsonpath.Path{a, b}, 1}, {jsonpath.Path{a, c}, 2}},
			Expected: `{"a":{"b":1,"c":2}}`,
		},
		{
			Name:     "sibling_keys_merge_reversed",
			Writes:   []write{{jsonpath.Path{a, c}, 2}, {jsonpath.Path{a, b}, 1}},
			Expected: `{"a":{"b":1,"c":2}}`,
		},
		{
			Name:     "array_elements",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(0)}, "x"}, {jsonpath.Path{a, jsonpath.Index(1)}, "y"}},
			Expected: `{"a":["x","y"]}`,
		},
		{
			Name:     "array_elements_reversed",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(1)}, "y"}, {jsonpath.Path{a, jsonpath.Index(0)}, "x"}},
			Expected: `{"a":["x","y"]}`,
		},
		{
			Name:     "array_padded_with_nulls",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(2)}, true}},
			Expected: `{"a":[null,null,true]}`,
		},
		{
			Name:     "object_inside_array",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(1), b}, 1}, {jsonpath.Path{a, jsonpath.Index(1), c}, 2}},
			Expected: `{"a":[null,{"b":1,"c":2}]}`,
		},
		{
			Name:     "padding_slot_becomes_container",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(1)}, 1}, {jsonpath.Path{a, jsonpath.Index(0), b}, 2}},
			Expected: `{"a":[{"b":2},1]}`,
		},
		{
			Name:     "nested_arrays",
			Writes:   []write{{jsonpath.Path{a, jsonpath.Index(0), jsonpath.Index(1)}, "x"}},
			Expected: `{"a":[[null,"x"]]}`,
		},
		{
			Name:     "same_leaf_last_write_wins",
			Writes:   []write{{jsonpath.Path{a, b}, 1}, {jsonpath.Path{a, b}, 2}},
			Expected: `{"a":{"b":2}}`,
		},
		{
			Name:     "null_value_written",
			Writes:   []write{{jsonpath.Path{a}, nil}},
			Expected: `{"a":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			root, err := apply(t, tc.Writes...)
			require.NoError(t, err)
			assert.JSONEq(t, tc.Expected, encode(t, root))
		})
	}
}

func TestSet_Conflicts(t *testing.T) {
	a, b := jsonpath.Key("a"), jsonpath.Key("b")

	testCases := []struct {
		Name          string
		Writes        []write
		ExpectedAt    jsonpath.Path
		ExpectedFound string
	}{
		{
			Name:       "key_below_scalar",
			Writes:     []write{{jsonpath.Path{a}, "x"}, {jsonpath.Path{a, b}, 1}},
			ExpectedAt: jsonpath.Path{a},
		},
		{
			Name:       "index_below_object",
			Writes:     []write{{jsonpath.Path{a, b}, 1}, {jsonpath.Path{a, jsonpath.Index(0)}, 2}},
			ExpectedAt: jsonpath.Path{a},
		},
		{
			Name:       "key_below_array",
			Writes:     []write{{jsonpath.Path{a, jsonpath.Index(0)}, 1}, {jsonpath.Path{a, b}, 2}},
			ExpectedAt: jsonpath.Path{a},
		},
		{
			Name:       "index_at_root",
			Writes:     []write{{jsonpath.Path{jsonpath.Index(0)}, 1}},
			ExpectedAt: jsonpath.Path{},
		},
		{
			Name:          "key_below_written_null",
			Writes:        []write{{jsonpath.Path{a}, nil}, {jsonpath.Path{a, b}, "x"}},
			ExpectedAt:    jsonpath.Path{a},
			ExpectedFound: "null",
		},
		{
			Name:          "index_below_written_null",
			Writes:        []write{{jsonpath.Path{a, jsonpath.Index(0)}, nil}, {jsonpath.Path{a, jsonpath.Index(0), jsonpath.Index(1)}, "x"}},
			ExpectedAt:    jsonpath.Path{a, jsonpath.Index(0)},
			ExpectedFound: "null",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := apply(t, tc.Writes...)
			var conflict *jsonpath.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tc.ExpectedAt, conflict.At)
			assert.Equal(t, tc.Writes[len(tc.Writes)-1].Path, conflict.Path)
			if tc.ExpectedFound != "" {
				assert.Equal(t, tc.ExpectedFound, conflict.Found)
			}
		})
	}
}

func TestSet_NullInRootIsConflict(t *testing.T) {
	root := map[string]any{"a": nil}
	_, err := jsonpath.Set(root, jsonpath.Path{jsonpath.Key("a"), jsonpath.Key("b")}, 1)
	var conflict *jsonpath.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, map[string]any{"a": nil}, root)
}

func TestSet_PaddingLeftAfterDocument(t *testing.T) {
	a := jsonpath.Key("a")
	b := jsonpath.NewBuilder(nil)
	require.NoError(t, b.Set(jsonpath.Path{a, jsonpath.Index(1)}, "x"))
	assert.JSONEq(t, `{"a":[null,"x"]}`, encode(t, b.Document()))

	value, found := jsonpath.Get(b.Document(), jsonpath.Path{a, jsonpath.Index(0)})
	require.True(t, found)
	assert.Nil(t, value)

	err := b.Set(jsonpath.Path{a, jsonpath.Index(0), jsonpath.Key("k")}, 1)
	var conflict *jsonpath.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestSet_IndexRange(t *testing.T) {
	a := jsonpath.Key("a")

	testCases := []struct {
		Name  string
		Index int
	}{
		{Name: "above_maximum", Index: jsonpath.MaxIndex + 1},
		{Name: "overflowing_capacity", Index: 1 << 62},
		{Name: "large_allocation", Index: 1_000_000_000},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			root := map[string]any{}
			p := jsonpath.Path{a, jsonpath.Index(tc.Index), jsonpath.Key("b")}
			var err error
			require.NotPanics(t, func() {
				_, err = jsonpath.Set(root, p, 1)
			})
			var rangeErr *jsonpath.IndexRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tc.Index, rangeErr.Index)
			assert.Empty(t, root)
		})
	}

	root, err := jsonpath.Set(map[string]any{}, jsonpath.Path{a, jsonpath.Index(jsonpath.MaxIndex)}, true)
	require.NoError(t, err)
	array, ok := root.(map[string]any)["a"].([]any)
	require.True(t, ok)
	assert.Len(t, array, jsonpath.MaxIndex+1)
	assert.Equal(t, true, array[jsonpath.MaxIndex])
	assert.Nil(t, array[0])
}

func TestSet_EmptyPathIsConflict(t *testing.T) {
	root := map[string]any{"a": 1}
	got, err := jsonpath.Set(root, jsonpath.Path{}, "replacement")
	var conflict *jsonpath.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, err.Error(), "root")
	assert.Equal(t, root, got)
}

func TestSet_CopiesValues(t *testing.T) {
	input := decode(t, `{"shared":{"k":1}}`)
	value, found := jsonpath.Get(input, jsonpath.Path{jsonpath.Key("shared")})
	require.True(t, found)

	root, err := apply(t,
		write{jsonpath.Path{jsonpath.Key("x")}, value},
		write{jsonpath.Path{jsonpath.Key("y")}, value},
	)
	require.NoError(t, err)
	root, err = jsonpath.Set(root, jsonpath.Path{jsonpath.Key("x"), jsonpath.Key("extra")}, true)
	require.NoError(t, err)

	assert.JSONEq(t, `{"x":{"k":1,"extra":true},"y":{"k":1}}`, encode(t, root))
	assert.JSONEq(t, `{"shared":{"k":1}}`, encode(t, input))
}

func TestSet_RoundTrip(t *testing.T) {
	input := decode(t, `{"a":[{"b":{"c":[1,2,{"d":"e"}]}}],"f":null,"g":1.50}`)

	paths := []jsonpath.Path{
		{jsonpath.Key("a")},
		{jsonpath.Key("a"), jsonpath.Index(0)},
		{jsonpath.Key("a"), jsonpath.Index(0), jsonpath.Key("b"), jsonpath.Key("c"), jsonpath.Index(2), jsonpath.Key("d")},
		{jsonpath.Key("a"), jsonpath.Index(0), jsonpath.Key("b"), jsonpath.Key("c"), jsonpath.Index(1)},
		{jsonpath.Key("f")},
		{jsonpath.Key("g")},
	}

	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			expected, found := jsonpath.Get(input, p)
			require.True(t, found)

			root, err := jsonpath.Set(map[string]any{}, p, expected)
			require.NoError(t, err)

			actual, found := jsonpath.Get(root, p)
			require.True(t, found)
			assert.Equal(t, expected, actual)
		})
	}
}
