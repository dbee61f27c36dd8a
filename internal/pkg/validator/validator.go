// Package validator runs go-playground struct validation for request DTOs
// that carry validate tags instead of gin binding tags.
package validator

import (
	"errors"

	validatorlib "github.com/go-playground/validator/v10"
)

var validate = validatorlib.New()

// Validate returns a field-to-failed-tag map, nil when the struct passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var verrs validatorlib.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
