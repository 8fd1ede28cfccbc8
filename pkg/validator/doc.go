// Package validator holds the identity-data checks used before any call leaves
// the process: email shape, password strength scoring, and the Brazilian CPF
// (national tax id) checksum and display mask.
//
// Two styles are offered. Plain predicates and formatters (IsEmail,
// ScorePassword, IsNationalID, MaskNationalID) are pure functions safe to call
// on every keystroke. Rule constructors (ValidEmail, PasswordFloor,
// ValidNationalID, Required, Equal) wrap the same checks with translation
// metadata so they can be combined with Apply:
//
//	err := validator.Apply(
//	    validator.Required("email", email),
//	    validator.ValidEmail("email", email),
//	    validator.PasswordFloor("password", password),
//	    validator.Equal("confirm_password", password, confirm),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    fields := verrs.Map(nil) // field -> messages
//	}
//
// The package is stateless and goroutine-safe.
package validator
