package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-walletforms/pkg/model"
)

// Form is the runtime state built from a field list.
type Form struct {
	fields         []model.FieldConfig
	formValidators []model.FormValidator
	initial        map[string]any

	root  *group
	index map[string]*control
	paths []string

	formErrors      model.Errors
	baseline        map[string]any
	hasChanges      bool
	submitAttempted bool

	listeners   []listener
	nextID      int
	queue       []Event
	dispatching bool
}

type group struct {
	order    []string
	groups   map[string]*group
	controls map[string]*control
}

type control struct {
	path     string
	field    model.FieldConfig
	value    any
	errors   model.Errors
	dirty    bool
	touched  bool
	disabled bool
}

// Option configures a Form at construction time.
type Option func(*Form)

// WithFormValidators attaches validators that run against the whole tree
// after every control has been validated.
func WithFormValidators(validators ...model.FormValidator) Option {
	return func(f *Form) {
		f.formValidators = compactValidators(validators)
	}
}

// WithInitialValue seeds the tree without marking anything dirty. The value
// becomes the baseline for HasChanges.
func WithInitialValue(value map[string]any) Option {
	return func(f *Form) {
		f.initial = normalizeMap(value)
	}
}

// New builds a Form from fields. The field list is validated first; every
// problem found is reported through a joined error.
func New(fields []model.FieldConfig, opts ...Option) (*Form, error) {
	f := &Form{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if err := f.SetFields(fields); err != nil {
		return nil, err
	}
	return f, nil
}

// SetFields replaces the field list and rebuilds the whole tree. Values,
// flags and the baseline start fresh; the current initial value (if any) is
// applied before the baseline is captured. On error the form is unchanged.
func (f *Form) SetFields(fields []model.FieldConfig) error {
	if f == nil {
		return nil
	}
	if err := checkFields(fields); err != nil {
		return err
	}

	f.fields = cloneFields(fields)
	f.root = newGroup()
	f.index = make(map[string]*control, len(fields))
	f.paths = make([]string, 0, len(fields))
	for _, field := range f.fields {
		f.attach(field)
	}

	f.submitAttempted = false
	if f.initial != nil {
		f.assign(f.initial, false)
	}
	f.validateAll()
	f.captureBaseline()
	return nil
}

// SetFormValidators replaces the form-level validators and re-validates the
// tree without emitting events.
func (f *Form) SetFormValidators(validators ...model.FormValidator) {
	if f == nil {
		return
	}
	f.formValidators = compactValidators(validators)
	if f.root != nil {
		f.validateAll()
	}
}

// Fields returns a copy of the field list the form was built from.
func (f *Form) Fields() []model.FieldConfig {
	if f == nil {
		return nil
	}
	return cloneFields(f.fields)
}

// Paths returns the control paths in field-list order.
func (f *Form) Paths() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.paths...)
}

// Field returns the configuration of the control at path.
func (f *Form) Field(path string) (model.FieldConfig, bool) {
	c := f.lookup(path)
	if c == nil {
		return model.FieldConfig{}, false
	}
	return c.field, true
}

func (f *Form) attach(field model.FieldConfig) {
	segments := strings.Split(field.Name, ".")
	parent := f.root
	for _, segment := range segments[:len(segments)-1] {
		parent = parent.ensureGroup(segment)
	}
	leaf := segments[len(segments)-1]
	c := &control{
		path:     field.Name,
		field:    field,
		disabled: field.Disabled,
	}
	parent.order = append(parent.order, leaf)
	parent.controls[leaf] = c
	f.index[field.Name] = c
	f.paths = append(f.paths, field.Name)
}

func (f *Form) lookup(path string) *control {
	if f == nil || f.index == nil {
		return nil
	}
	return f.index[strings.TrimSpace(path)]
}

func newGroup() *group {
	return &group{
		groups:   make(map[string]*group),
		controls: make(map[string]*control),
	}
}

func (g *group) ensureGroup(name string) *group {
	if existing, ok := g.groups[name]; ok {
		return existing
	}
	child := newGroup()
	g.groups[name] = child
	g.order = append(g.order, name)
	return child
}

// checkFields rejects empty names, empty segments, duplicates, prefix
// collisions and unknown types.
func checkFields(fields []model.FieldConfig) error {
	var problems []error
	seen := make(map[string]struct{}, len(fields))
	for i, field := range fields {
		name := field.Name
		if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
			problems = append(problems, fmt.Errorf("%w: field %d has name %q", ErrInvalidFieldName, i, name))
			continue
		}
		for _, segment := range strings.Split(name, ".") {
			if segment == "" {
				problems = append(problems, fmt.Errorf("%w: %q has an empty segment", ErrInvalidFieldName, name))
				break
			}
		}
		if _, dup := seen[name]; dup {
			problems = append(problems, fmt.Errorf("%w: %q", ErrDuplicateField, name))
		}
		seen[name] = struct{}{}
		if field.Type != "" && !field.Type.Valid() {
			problems = append(problems, fmt.Errorf("%w: %q on %q", ErrUnknownFieldType, field.Type, name))
		}
	}
	for _, field := range fields {
		for _, other := range fields {
			if field.Name != "" && strings.HasPrefix(other.Name, field.Name+".") {
				problems = append(problems, fmt.Errorf("%w: %q and %q", ErrPathCollision, field.Name, other.Name))
			}
		}
	}
	return errors.Join(problems...)
}

func cloneFields(fields []model.FieldConfig) []model.FieldConfig {
	if len(fields) == 0 {
		return nil
	}
	out := make([]model.FieldConfig, len(fields))
	for i, field := range fields {
		field.Validators = append([]model.Validator(nil), field.Validators...)
		field.Options = append([]model.SelectOption(nil), field.Options...)
		if field.Type == "" {
			field.Type = model.FieldTypeText
		}
		out[i] = field
	}
	return out
}

func compactValidators(validators []model.FormValidator) []model.FormValidator {
	out := make([]model.FormValidator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
