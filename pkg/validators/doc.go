// Package validators provides the field rules used by the wallet back-office
// forms. Every constructor returns a model.Validator: a pure, synchronous
// function from a raw control value to a tagged error, or nil.
//
// Format rules treat nil, "" and (for trimming rules) whitespace-only input as
// "no opinion" so Required can be composed independently:
//
//	validators := []model.Validator{
//		validators.Required(),
//		validators.TrimmedRequired(),
//		validators.NationalID(),
//	}
//
// WalletLimitsConsistency is the only form-level rule. It writes and clears
// its own limitMismatch code on the two participating controls and never
// touches sibling codes, so it can be re-run any number of times without
// churning the error sets.
package validators
