package dto

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// minPasswordLength is the shortest password accepted at signup.
const minPasswordLength = 6

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
}

// IsValidPassword requires at least six characters including a letter and a digit.
func IsValidPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
