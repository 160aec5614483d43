package accountdelivery

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidNotBlank rejects strings made only of whitespace.
var ValidNotBlank validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}
