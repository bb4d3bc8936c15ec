// internal/common/camunda/variables_test.go
package camunda

import (
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/pkg/registry"
)

func testValidator(t *testing.T) *validation.Validator {
	v, err := validation.NewValidator(&registry.ActivityRegistry{
		Activities: []registry.Activity{{
			ID:       "get-recommendations",
			TaskType: "get-recommendations",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{"type": "integer", "minimum": 0},
				},
			},
		}},
	})
	require.NoError(t, err)
	return v
}

func job(taskType, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: taskType, Variables: variables}}
}

func TestDecodeVariables(t *testing.T) {
	var dst struct {
		Limit int `json:"limit"`
	}

	err := DecodeVariables(job("get-recommendations", `{"limit":4}`), testValidator(t), &dst)

	require.NoError(t, err)
	assert.Equal(t, 4, dst.Limit)
}

func TestDecodeVariables_SchemaViolation(t *testing.T) {
	var dst map[string]interface{}

	err := DecodeVariables(job("get-recommendations", `{"limit":-3}`), testValidator(t), &dst)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "limit")
	assert.Contains(t, stdErr.Metadata, "violations")
}

func TestDecodeVariables_MalformedJSON(t *testing.T) {
	var dst map[string]interface{}

	err := DecodeVariables(job("no-schema", `{"limit":`), testValidator(t), &dst)

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.AsStandardError(err).Code)
}
