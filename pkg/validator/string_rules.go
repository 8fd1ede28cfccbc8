package validator

import "strings"

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Equal validates that a confirmation value matches the original one.
// An empty confirmation is treated as absent and always passes.
func Equal(field, value, confirmation string) Rule {
	return Rule{
		Check: func() bool {
			return confirmation == "" || value == confirmation
		},
		Error: ValidationError{
			Field:          field,
			Message:        "values do not match",
			TranslationKey: "validation.mismatch",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
