package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/nahid/certchain/internal/app/models/dto"
)

// BindingErrorDetail turns a gin binding failure into the standard error
// payload, listing each failed field when the underlying error came from the
// validator.
func BindingErrorDetail(err error) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, formatValidationError(fieldErr))
		}
		return errorDetail.WithDetails(messages)
	}

	return errorDetail.WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "eth_addr":
		return e.Field() + " must be a valid wallet address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
