package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func TestSchema_Validate(t *testing.T) {
	s, err := Compile("person", personSchema)
	require.NoError(t, err)
	assert.Equal(t, "person", s.Name())

	tests := []struct {
		name      string
		doc       interface{}
		wantValid bool
		wantField string
	}{
		{name: "valid", doc: map[string]interface{}{"name": "Asha", "tags": []interface{}{"a"}}, wantValid: true},
		{name: "missing required", doc: map[string]interface{}{"tags": []interface{}{}}, wantField: "(root)"},
		{name: "wrong item type", doc: map[string]interface{}{"name": "Asha", "tags": []interface{}{1}}, wantField: "tags.0"},
		{name: "struct input", doc: struct {
			Name string `json:"name"`
		}{Name: "Asha"}, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
				assert.NotEmpty(t, result.Messages()[0])
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustCompile("broken", `{`) })
}
