package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "properties": {
    "manager": {"type": "string", "enum": ["npm", "yarn"]}
  },
  "additionalProperties": false
}`

func TestValidator(t *testing.T) {
	v, err := NewValidator("test.json", []byte(testSchema))
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]string{"manager": "npm"}))
	assert.NoError(t, v.Validate(struct{}{}))

	err = v.Validate(map[string]string{"manager": "cargo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/manager")

	err = v.Validate(map[string]string{"other": "x"})
	assert.Error(t, err)
}

func TestNewValidatorRejectsBadSchema(t *testing.T) {
	_, err := NewValidator("bad.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
}
