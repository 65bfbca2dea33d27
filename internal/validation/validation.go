// Package validation wraps go-playground/validator with error messages in the
// "<field> is required" style used throughout gapikit.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs and single values.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports field names from the given struct tag
// (e.g. "json" or "toml"), falling back to the Go field name.
func New(tagKey string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get(tagKey), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// RegisterStringRule adds a custom tag that validates string fields with fn.
func (v *Validator) RegisterStringRule(tag string, fn func(string) bool) {
	if err := v.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: failed to register %q: %v", tag, err))
	}
}

// Struct validates s and returns an error describing every failed field.
func (v *Validator) Struct(s any) error {
	return describe(v.v.Struct(s), "")
}

// Var validates a single value against tag, reporting it as name.
func (v *Validator) Var(name string, value any, tag string) error {
	return describe(v.v.Var(value, tag), name)
}

func describe(err error, name string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		msgs = append(msgs, message(field, fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless", "required_if", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "excluded_if", "excluded_unless":
		return fmt.Sprintf("%s must be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "email":
		return fmt.Sprintf("%s must be an email address, got %q", field, fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s): %v", field, fe.Tag(), fe.Value())
	}
}
