// Package model defines the declarative field descriptors and validation
// types shared by the form engine, the validator library and the fieldset
// loaders. FieldConfig names are dotted paths that the engine turns into a
// nested group tree; validators are plain functions returning a tagged
// ValidationError (or nil), so a field's rules compose by listing them.
//
// Form-level validators receive a ControlSet rather than the engine itself.
// The same interface is used by the engine when it applies server-side
// errors, which keeps a single error channel for every origin.
package model
