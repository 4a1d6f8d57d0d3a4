package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	FailedField string
	Tag         string
	Param       string
}

var validate = validator.New()

// ValidateStruct runs the struct's validate tags and returns one entry per failed field.
func ValidateStruct(data interface{}) []*FieldError {
	var errs []*FieldError
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errs = append(errs, &FieldError{
				FailedField: err.StructNamespace(),
				Tag:         err.Tag(),
				Param:       err.Param(),
			})
		}
	}
	return errs
}

// Message renders field errors as a single human-readable message.
func Message(errs []*FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Param != "" {
			parts = append(parts, fmt.Sprintf("%s failed on %s=%s", e.FailedField, e.Tag, e.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed on %s", e.FailedField, e.Tag))
	}
	return strings.Join(parts, "; ")
}
