package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// NewJSON creates a validator that reports field names by their json tag,
// so errors can be returned to API callers as-is.
func NewJSON() *Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// MissingFields returns the json names of fields that failed the required rule, in declaration order.
func MissingFields(err error) []string {
	ve, ok := err.(ValidationErrors)
	if !ok {
		return nil
	}
	var missing []string
	for _, e := range ve {
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
		}
	}
	return missing
}
