package form

import "errors"

var (
	// ErrUnknownField is returned when a path does not name a control.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrFieldDisabled is returned when a user edit targets a disabled control.
	ErrFieldDisabled = errors.New("form: field is disabled")
	// ErrFieldReadOnly is returned when a user edit targets a read-only control.
	ErrFieldReadOnly = errors.New("form: field is read-only")
	// ErrInvalidFieldName is returned for empty names or empty path segments.
	ErrInvalidFieldName = errors.New("form: invalid field name")
	// ErrDuplicateField is returned when two fields share a path.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrPathCollision is returned when a field path is a prefix of another
	// ("a" and "a.b").
	ErrPathCollision = errors.New("form: field path collides with a group")
	// ErrUnknownFieldType is returned for types outside the supported set.
	ErrUnknownFieldType = errors.New("form: unknown field type")
)
