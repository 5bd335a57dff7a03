package form

import "github.com/goliatone/go-walletforms/pkg/model"

// Status is the display state of a single control.
type Status string

const (
	// StatusNone means the control should render neutrally: it is missing,
	// disabled, or the user has not interacted with it yet.
	StatusNone Status = ""
	// StatusValid means the control was interacted with and holds no errors.
	StatusValid Status = "valid"
	// StatusInvalid means the control was interacted with and holds errors.
	StatusInvalid Status = "invalid"
)

// ControlState is a read-only snapshot of one control.
type ControlState struct {
	Path     string
	Field    model.FieldConfig
	Value    any
	Errors   model.Errors
	Dirty    bool
	Touched  bool
	Disabled bool
	Status   Status
}

// FieldStatus reports how the control at path should be styled. A control
// counts as interacted with once it is dirty, or once it has been touched by
// a submit attempt.
func (f *Form) FieldStatus(path string) Status {
	c := f.lookup(path)
	if c == nil || c.disabled {
		return StatusNone
	}
	if !c.dirty && !(c.touched && f.submitAttempted) {
		return StatusNone
	}
	if len(c.errors) > 0 {
		return StatusInvalid
	}
	return StatusValid
}

// Control returns a snapshot of the control at path.
func (f *Form) Control(path string) (ControlState, bool) {
	c := f.lookup(path)
	if c == nil {
		return ControlState{}, false
	}
	return ControlState{
		Path:     c.path,
		Field:    c.field,
		Value:    normalizeValue(c.value),
		Errors:   c.errors.Clone(),
		Dirty:    c.dirty,
		Touched:  c.touched,
		Disabled: c.disabled,
		Status:   f.FieldStatus(c.path),
	}, true
}

// Submit marks every control touched so hidden errors become visible, then
// returns the raw value tree when the form is valid. An invalid form yields
// (nil, false). Submit performs no I/O.
func (f *Form) Submit() (map[string]any, bool) {
	if f == nil || f.root == nil {
		return nil, false
	}
	for _, c := range f.index {
		c.touched = true
	}
	f.submitAttempted = true
	f.emit(Event{Type: EventSubmitted})
	if !f.Valid() {
		return nil, false
	}
	return f.Value(), true
}
