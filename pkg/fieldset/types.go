package fieldset

import (
	"errors"
	"sort"

	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/model"
)

var (
	// ErrNotFound is returned when a fieldset id is not part of a store.
	ErrNotFound = errors.New("fieldset: not found")
	// ErrInvalidRule is returned when a validator entry cannot be parsed.
	ErrInvalidRule = errors.New("fieldset: invalid rule entry")
)

// Rule references a registered validator by name. Params is nil for rules
// declared by name only.
type Rule struct {
	Name   string
	Params any
}

// Fieldset is a named field list with its resolved validators.
type Fieldset struct {
	ID       string
	Source   string
	TitleKey string

	Fields         []model.FieldConfig
	FormValidators []model.FormValidator
	InitialValue   map[string]any

	// FieldRules and FormRules keep the declarations the validators were
	// built from, keyed by field name.
	FieldRules map[string][]Rule
	FormRules  []Rule
}

// NewForm builds a form engine for the fieldset. Caller options are applied
// after the fieldset defaults, so WithInitialValue replaces the declared
// initial value.
func (s Fieldset) NewForm(opts ...form.Option) (*form.Form, error) {
	base := []form.Option{form.WithFormValidators(s.FormValidators...)}
	if s.InitialValue != nil {
		base = append(base, form.WithInitialValue(s.InitialValue))
	}
	return form.New(s.Fields, append(base, opts...)...)
}

// Store keeps parsed fieldsets keyed by id. It is safe for concurrent readers
// once loading is done.
type Store struct {
	options   options
	fieldsets map[string]Fieldset
}

// Fieldset returns the fieldset registered under id.
func (s *Store) Fieldset(id string) (Fieldset, bool) {
	if s == nil {
		return Fieldset{}, false
	}
	set, ok := s.fieldsets[id]
	return set, ok
}

// IDs lists the stored fieldset ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.fieldsets))
	for id := range s.fieldsets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any fieldsets.
func (s *Store) Empty() bool {
	return s == nil || len(s.fieldsets) == 0
}
