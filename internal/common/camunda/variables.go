// internal/common/camunda/variables.go
package camunda

import (
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"

	"influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/validation"
)

// DecodeVariables checks the job variables against the input schema of the
// job's task type and unmarshals them into dst. Failures are reported as
// INPUT_VALIDATION_FAILED.
func DecodeVariables(job entities.Job, v *validation.Validator, dst interface{}) error {
	res, err := v.ValidateJSON(job.Type, job.Variables)
	if err != nil {
		return errors.NewInputValidationFailedError(err.Error())
	}
	if !res.Valid {
		return errors.NewInputValidationFailedError(res.Error()).
			WithMetadata("violations", res.Errors)
	}
	if err := json.Unmarshal([]byte(job.Variables), dst); err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}
