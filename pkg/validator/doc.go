// Package validator provides declarative, composable validation rules.
//
// A Rule pairs a Check closure with the ValidationError reported when the check
// fails. Apply evaluates a list of rules and returns ValidationErrors (or nil).
// Rules can be tagged with a classification error through Rule.As; the returned
// ValidationErrors unwraps to those errors so callers can branch with errors.Is
// while still rendering the per-field messages.
//
//	err := validator.Apply(
//		validator.Required("content", draft.Content).As(ErrEmptyContent),
//		validator.MaxLen("subject", draft.Subject, 200),
//	)
//	if errors.Is(err, ErrEmptyContent) {
//		// ...
//	}
//
// When switches a group of rules on or off, which keeps per-variant rule tables
// free of scattered conditionals.
package validator
