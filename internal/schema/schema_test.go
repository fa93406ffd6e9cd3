package schema

import (
	"path/filepath"
	"testing"

	"github.com/homenavi/barista-data/internal/jsondoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sourcesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"filename", "name"},
		"properties": map[string]any{
			"filename": map[string]any{"type": "string"},
			"name":     map[string]any{"type": "string"},
		},
	},
}

func TestValidate_Valid(t *testing.T) {
	data := []any{
		map[string]any{"filename": "a.json", "name": "A"},
	}
	assert.NoError(t, Validate(data, sourcesSchema))
}

func TestValidate_PrimaryViolation(t *testing.T) {
	data := []any{
		map[string]any{"name": "A"},
	}
	err := Validate(data, sourcesSchema)
	require.Error(t, err)

	var ve *ViolationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "at '/0': missing properties: 'filename'", ve.Error())
}

func TestCheck_OrdersViolationsByLocation(t *testing.T) {
	s, err := Compile("sources.schema.json", sourcesSchema)
	require.NoError(t, err)

	data := make([]any, 0, 11)
	for i := 0; i < 11; i++ {
		data = append(data, map[string]any{"filename": "x.json", "name": "x"})
	}
	data[10] = map[string]any{"filename": 1, "name": "x"}
	data[2] = map[string]any{"filename": "x.json", "name": false}

	err = s.Check(data)
	var ve *ViolationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Messages, 2)
	assert.Contains(t, ve.Messages[0], "at '/2/name'")
	assert.Contains(t, ve.Messages[1], "at '/10/filename'")
	assert.Equal(t, ve.Messages[0], ve.Error())
	assert.Equal(t, ve.Messages[0]+"; "+ve.Messages[1], ve.All())
}

func TestCheck_Deterministic(t *testing.T) {
	s, err := Compile("sources.schema.json", sourcesSchema)
	require.NoError(t, err)
	data := []any{map[string]any{"filename": 3, "name": 4}}

	first := s.Check(data)
	require.Error(t, first)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Error(), s.Check(data).Error())
	}
}

func TestCheck_RootViolation(t *testing.T) {
	s, err := Compile("sources.schema.json", sourcesSchema)
	require.NoError(t, err)

	err = s.Check(map[string]any{"filename": "a.json"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "at '")
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken.schema.json", map[string]any{"type": 12})
	assert.ErrorIs(t, err, ErrInvalidSchema)

	err = Validate(nil, []any{"not", "a", "schema"})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestComparePointers(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "/0", -1},
		{"/2", "/10", -1},
		{"/10/name", "/2", 1},
		{"/0/a", "/0/b", -1},
	}
	for _, tt := range tests {
		got := comparePointers(tt.a, tt.b)
		switch {
		case tt.want < 0:
			assert.Negative(t, got, "%q vs %q", tt.a, tt.b)
		case tt.want > 0:
			assert.Positive(t, got, "%q vs %q", tt.a, tt.b)
		default:
			assert.Zero(t, got, "%q vs %q", tt.a, tt.b)
		}
	}
}

func TestCompile_PathNeedsEscaping(t *testing.T) {
	for _, dir := range []string{"a#b", "c%d", "e f", "g?h"} {
		t.Run(dir, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), dir, "sources.schema.json")

			s, err := Compile(path, sourcesSchema)
			require.NoError(t, err)
			assert.NoError(t, s.Check([]any{map[string]any{"filename": "a.json", "name": "A"}}))
		})
	}
}

func TestCompile_KeepsLargeIntegers(t *testing.T) {
	doc, err := jsondoc.Decode("big.schema.json", []byte(`{"const": 9007199254740993}`))
	require.NoError(t, err)
	s, err := Compile("big.schema.json", doc)
	require.NoError(t, err)

	ok, err := jsondoc.Decode("ok.json", []byte(`9007199254740993`))
	require.NoError(t, err)
	off, err := jsondoc.Decode("off.json", []byte(`9007199254740992`))
	require.NoError(t, err)

	assert.NoError(t, s.Check(ok))
	assert.Error(t, s.Check(off))
}
