// Package errors provides the structured error type used across rpg-sheet.
//
// Every failure that crosses a package boundary is an *Error carrying a Code,
// a human readable message, an optional cause, and metadata:
//
//	err := errors.NotFoundf("note %s not found", noteID)
//	err := errors.DataLossf("unknown race tag %q", tag)
//
// Wrapping keeps the original code so callers can still branch on it:
//
//	if err != nil {
//		return nil, errors.Wrapf(err, "failed to load character %s", id)
//	}
//
//	if errors.IsNotFound(err) {
//		// recoverable at the caller
//	}
//
// Codes map onto the failure classes of the character engine:
//   - CodeDataLoss: a stored record carries a catalog tag that no longer resolves
//   - CodeNotFound: a character or one of its child records does not exist
//   - CodeInvalidArgument: malformed input, including unset enumerated kinds
//   - CodeAborted: a concurrent write touched the same character mid-transaction
//   - CodeInternal: the store rejected or could not complete a write
//
// Input validation is collected with a ValidationBuilder so that all field
// problems are reported at once.
package errors
