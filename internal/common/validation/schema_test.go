// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencer-search-workers/pkg/registry"
)

func testRegistry() *registry.ActivityRegistry {
	return &registry.ActivityRegistry{
		Activities: []registry.Activity{
			{
				ID:       "get-recommendations",
				TaskType: "get-recommendations",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"campaignObjective": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"awareness", "sales", "both", ""},
						},
						"limit": map[string]interface{}{"type": "integer", "minimum": 0},
					},
				},
			},
			{ID: "no-schema", TaskType: "no-schema"},
		},
	}
}

func TestNewValidator(t *testing.T) {
	v, err := NewValidator(testRegistry())
	require.NoError(t, err)

	assert.True(t, v.Has("get-recommendations"))
	assert.False(t, v.Has("no-schema"))
	assert.Equal(t, []string{"get-recommendations"}, v.TaskTypes())
}

func TestNewValidator_BadSchema(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{{
		ID:          "broken",
		TaskType:    "broken",
		InputSchema: map[string]interface{}{"type": 42},
	}}}

	_, err := NewValidator(reg)
	assert.Error(t, err)
}

func TestValidator_ValidateJSON(t *testing.T) {
	v, err := NewValidator(testRegistry())
	require.NoError(t, err)

	res, err := v.ValidateJSON("get-recommendations", `{"campaignObjective":"sales","limit":5,"other":true}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = v.ValidateJSON("get-recommendations", `{"campaignObjective":"reach","limit":-1}`)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)
	assert.Contains(t, res.Error(), "campaignObjective")
	assert.Contains(t, res.Error(), "limit")
}

func TestValidator_Validate_GoValue(t *testing.T) {
	v, err := NewValidator(testRegistry())
	require.NoError(t, err)

	res, err := v.Validate("get-recommendations", map[string]interface{}{"limit": 2.5})
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestValidator_PassThrough(t *testing.T) {
	var nilValidator *Validator
	res, err := nilValidator.ValidateJSON("anything", `{}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	v, err := NewValidator(testRegistry())
	require.NoError(t, err)
	res, err = v.ValidateJSON("no-schema", `not even json`)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}
