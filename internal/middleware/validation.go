package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/campustrack/internal/app/models/dto"
)

// ValidationErrorDetail converts a binding error into an ErrorDetail listing each failed field
func ValidationErrorDetail(err error, message string) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorDetail.WithDetails(err.Error())
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = formatValidationError(e)
	}
	if len(validationErrors) == 1 {
		errorDetail = errorDetail.WithField(validationErrors[0].Field())
	}
	return errorDetail.WithDetails(fields)
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
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
