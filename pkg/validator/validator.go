package validator

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors flattens validation failures into a single message
// suitable for the response envelope's error field.
func (cv *CustomValidator) FormatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Validation failed"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "min":
			messages = append(messages, field+" must contain at least "+e.Param()+" entries")
		case "max":
			messages = append(messages, field+" must contain at most "+e.Param()+" entries")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	sort.Strings(messages)
	return strings.Join(messages, "; ")
}
