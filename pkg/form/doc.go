// Package form implements the dynamic form engine used by the wallet
// back-office screens.
//
// A Form is built from a list of model.FieldConfig. Dotted names become a
// nested group tree ("address.city" creates an "address" group holding a
// "city" control) and every leaf is indexed by its full path for direct
// lookup. The engine tracks per-control value, errors, dirty and touched
// state, keeps a baseline snapshot of the value tree to answer HasChanges,
// and resolves errors to message references through a fixed precedence
// table.
//
// Field status is three-valued. A control reports StatusNone until the user
// has edited it (or a submit attempt has touched it), so untouched invalid
// fields render neutrally on first display.
//
// Form-level validators and server-side errors share one error channel
// (model.ControlSet). Writes made through that channel never re-run
// validation, which keeps corrective writes from looping.
//
// A Form is owned by a single screen and is not safe for concurrent use.
package form
