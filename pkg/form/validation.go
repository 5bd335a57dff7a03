package form

import (
	"fmt"

	"github.com/goliatone/go-walletforms/pkg/model"
)

// SetValue records a user edit: the control becomes dirty, its validators
// and the form validators run, HasChanges is recomputed and a ValueChanged
// event is emitted.
func (f *Form) SetValue(path string, value any) error {
	c := f.lookup(path)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	if c.disabled {
		return fmt.Errorf("%w: %q", ErrFieldDisabled, path)
	}
	if c.field.ReadOnly {
		return fmt.Errorf("%w: %q", ErrFieldReadOnly, path)
	}

	c.value = normalizeValue(value)
	c.dirty = true
	c.validate()
	f.runFormValidators()
	f.updateHasChanges()
	f.emit(Event{Type: EventValueChanged, Path: c.path})
	return nil
}

// MarkTouched flags the control as visited (blurred).
func (f *Form) MarkTouched(path string) {
	c := f.lookup(path)
	if c == nil || c.touched {
		return
	}
	c.touched = true
	f.emit(Event{Type: EventStatusChanged, Path: c.path})
}

// MarkAllDirty flags every control as edited so their status becomes
// visible. The create-customer screen does this before submitting.
func (f *Form) MarkAllDirty() {
	if f == nil {
		return
	}
	for _, c := range f.index {
		c.dirty = true
	}
	f.emit(Event{Type: EventStatusChanged})
}

// Disable excludes the control from validation and validity. Its value
// stays part of Value.
func (f *Form) Disable(path string) {
	f.setDisabled(path, true)
}

// Enable re-includes a disabled control and re-validates it.
func (f *Form) Enable(path string) {
	f.setDisabled(path, false)
}

func (f *Form) setDisabled(path string, disabled bool) {
	c := f.lookup(path)
	if c == nil || c.disabled == disabled {
		return
	}
	c.disabled = disabled
	c.validate()
	f.runFormValidators()
	f.emit(Event{Type: EventStatusChanged, Path: c.path})
}

// Valid reports whether every enabled control is error free and no
// form-level validator failed.
func (f *Form) Valid() bool {
	if f == nil || f.root == nil {
		return false
	}
	if len(f.formErrors) > 0 {
		return false
	}
	for _, c := range f.index {
		if !c.disabled && len(c.errors) > 0 {
			return false
		}
	}
	return true
}

// FormErrors returns the errors produced by form-level validators.
func (f *Form) FormErrors() model.Errors {
	if f == nil {
		return nil
	}
	return f.formErrors.Clone()
}

// Errors returns the errors held by the control at path.
func (f *Form) Errors(path string) model.Errors {
	c := f.lookup(path)
	if c == nil {
		return nil
	}
	return c.errors.Clone()
}

// SetAPIError attaches a server-reported message to the control at path
// through the same channel form validators use. The message is stored as
// given; rendering is left to the caller. It reports whether the control
// exists.
func (f *Form) SetAPIError(path, message string) bool {
	c := f.lookup(path)
	if c == nil {
		return false
	}
	controls{f}.SetError(c.path, model.ValidationError{
		Code:   model.CodeAPI,
		Params: map[string]any{model.ParamMessage: message},
	})
	f.emit(Event{Type: EventStatusChanged, Path: c.path})
	return true
}

func (f *Form) validateAll() {
	for _, path := range f.paths {
		f.index[path].validate()
	}
	f.runFormValidators()
}

func (f *Form) runFormValidators() {
	if len(f.formValidators) == 0 {
		f.formErrors = nil
		return
	}
	set := controls{f}
	errs := make(model.Errors)
	for _, validator := range f.formValidators {
		if err := validator(set); err != nil {
			errs[err.Code] = *err
		}
	}
	if len(errs) == 0 {
		errs = nil
	}
	f.formErrors = errs
}

// validate recomputes the control's errors from its own validators. Later
// validators win when two report the same code.
func (c *control) validate() {
	if c.disabled {
		c.errors = nil
		return
	}
	var errs model.Errors
	for _, validator := range c.field.Validators {
		if validator == nil {
			continue
		}
		if err := validator(c.value); err != nil {
			if errs == nil {
				errs = make(model.Errors)
			}
			errs[err.Code] = *err
		}
	}
	c.errors = errs
}

// controls exposes the form through model.ControlSet. Writes go straight to
// the error sets and never trigger validation.
type controls struct {
	f *Form
}

var _ model.ControlSet = controls{}

func (s controls) Value(path string) (any, bool) {
	c := s.f.lookup(path)
	if c == nil {
		return nil, false
	}
	return c.value, true
}

func (s controls) Errors(path string) model.Errors {
	c := s.f.lookup(path)
	if c == nil {
		return nil
	}
	return c.errors.Clone()
}

func (s controls) SetError(path string, err model.ValidationError) {
	c := s.f.lookup(path)
	if c == nil || err.Code == "" {
		return
	}
	if c.errors == nil {
		c.errors = make(model.Errors)
	}
	c.errors[err.Code] = err
}

func (s controls) ClearError(path string, code model.ErrorCode) {
	c := s.f.lookup(path)
	if c == nil || !c.errors.Has(code) {
		return
	}
	delete(c.errors, code)
	if len(c.errors) == 0 {
		c.errors = nil
	}
}
