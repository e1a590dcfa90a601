package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
)

// validate is the shared validator instance. validator.Validate caches struct
// metadata, so one instance serves the whole process.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO against its `validate` tags and reports
// failures as apperrors.ErrValidation.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed on the %q rule", apperrors.ErrValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
