package model

// FieldType is a presentation hint for a field. It never changes how a field
// is validated.
type FieldType string

const (
	FieldTypeText          FieldType = "text"
	FieldTypeEmail         FieldType = "email"
	FieldTypeNumber        FieldType = "number"
	FieldTypeDate          FieldType = "date"
	FieldTypeDateTimeLocal FieldType = "datetime-local"
	FieldTypeSelect        FieldType = "select"
	FieldTypeCheckbox      FieldType = "checkbox"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeDate,
		FieldTypeDateTimeLocal, FieldTypeSelect, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// SelectOption is a single entry of a select field.
type SelectOption struct {
	LabelKey string `json:"labelKey" yaml:"labelKey"`
	Value    any    `json:"value" yaml:"value"`
}

// FieldConfig declares one form field. Name is a dotted path ("address.city");
// every segment but the last names a group, the last one names the control.
// Label, placeholder and hint keys are message references the engine never
// interprets.
type FieldConfig struct {
	Name           string         `json:"name" yaml:"name"`
	LabelKey       string         `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	PlaceholderKey string         `json:"placeholderKey,omitempty" yaml:"placeholderKey,omitempty"`
	HintKey        string         `json:"hintKey,omitempty" yaml:"hintKey,omitempty"`
	Type           FieldType      `json:"type" yaml:"type"`
	Validators     []Validator    `json:"-" yaml:"-"`
	Options        []SelectOption `json:"options,omitempty" yaml:"options,omitempty"`
	InputMask      string         `json:"inputMask,omitempty" yaml:"inputMask,omitempty"`
	ReadOnly       bool           `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Disabled       bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Validator inspects a raw control value. A nil result means the value is
// acceptable (or that the validator has no opinion about it).
type Validator func(value any) *ValidationError

// FormValidator inspects the whole control tree. It may write errors onto
// individual controls through the ControlSet, and returns the form-level
// error, if any.
type FormValidator func(controls ControlSet) *ValidationError

// ControlSet is the error channel shared by the engine, cross-field validators
// and server-side error mapping. Paths are dotted field names.
type ControlSet interface {
	// Value returns the raw value held by the control at path.
	Value(path string) (any, bool)
	// Errors returns a copy of the errors currently held by the control.
	Errors(path string) Errors
	// SetError adds or replaces the entry for err.Code, leaving other codes
	// untouched.
	SetError(path string, err ValidationError)
	// ClearError removes the entry for code, leaving other codes untouched.
	ClearError(path string, code ErrorCode)
}
