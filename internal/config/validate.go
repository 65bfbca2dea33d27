package config

import (
	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/validation"
)

var validate = newValidator()

func newValidator() *validation.Validator {
	v := validation.New("toml")
	v.RegisterStringRule("account", func(s string) bool {
		return google.ValidateAccountName(s) == nil
	})
	return v
}
