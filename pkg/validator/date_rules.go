package validator

import (
	"time"
)

// DateAfter validates that value is strictly later than after.
// Equal instants fail.
func DateAfter(field string, value time.Time, after time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(after)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be later than " + after.Format(time.RFC3339),
			TranslationKey: "validation.date_after",
			TranslationValues: map[string]any{
				"field": field,
				"after": after.Format(time.RFC3339),
			},
		},
	}
}
