// Package model holds the persistent record types and their validation rules.
package model

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// careers values contain spaces, which oneof cannot express
	validate.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		_, ok := validCareers[fl.Field().String()]
		return ok
	})
}

// Validate runs struct-tag validation; failures return
// validator.ValidationErrors for the error normalizer to unpack.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
