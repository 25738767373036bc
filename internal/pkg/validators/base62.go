package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Base62Alphabet lists the base-62 digits in ascending value: digits, then uppercase, then lowercase letters
const Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// IsBase62 reports whether s is a non-empty string of base-62 digits
func IsBase62(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Base62Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// Base62Validation validates that a string field only holds base-62 digits.
func Base62Validation(fl validator.FieldLevel) bool {
	return IsBase62(fl.Field().String())
}

// New returns a validator with the custom validations of this package registered.
func New() *validator.Validate {
	validate := validator.New()
	// registration only fails for an empty tag or nil func
	_ = validate.RegisterValidation("base62", Base62Validation)
	return validate
}
