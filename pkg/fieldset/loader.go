package fieldset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/model"
	"github.com/goliatone/go-walletforms/pkg/validators"
)

// Option customises loading.
type Option func(*options)

type options struct {
	registry *validators.Registry
}

// WithRegistry resolves rule names through reg instead of the built-in
// registry. Use it to make custom rules available to documents.
func WithRegistry(reg *validators.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.registry == nil {
		o.registry = validators.NewRegistry()
	}
	return o
}

// NewStore returns an empty store. Fill it with AddFS.
func NewStore(opts ...Option) *Store {
	return &Store{
		options:   resolveOptions(opts),
		fieldsets: make(map[string]Fieldset),
	}
}

// LoadFS walks fsys and parses every JSON/YAML fieldset document. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS, opts ...Option) (*Store, error) {
	store := NewStore(opts...)
	if err := store.AddFS(fsys); err != nil {
		return nil, err
	}
	return store, nil
}

// Default loads the embedded catalog.
func Default(opts ...Option) (*Store, error) {
	return LoadFS(EmbeddedFS(), opts...)
}

// AddFS merges the documents found in fsys into the store. Ids must be
// unique across every added filesystem. On error the store is unchanged.
func (s *Store) AddFS(fsys fs.FS) error {
	if s == nil || fsys == nil {
		return nil
	}
	staged := make(map[string]Fieldset)
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("fieldset: read %s: %w", name, err)
		}
		sets, err := parse(data, name, s.options)
		if err != nil {
			return err
		}
		for _, set := range sets {
			if _, exists := s.fieldsets[set.ID]; exists {
				return fmt.Errorf("fieldset: duplicate id %q (file %s)", set.ID, name)
			}
			if _, exists := staged[set.ID]; exists {
				return fmt.Errorf("fieldset: duplicate id %q (file %s)", set.ID, name)
			}
			staged[set.ID] = set
		}
		return nil
	})
	if err != nil {
		return err
	}
	for id, set := range staged {
		s.fieldsets[id] = set
	}
	return nil
}

// Parse decodes a single document. source is only used in error messages.
func Parse(data []byte, source string, opts ...Option) ([]Fieldset, error) {
	return parse(data, source, resolveOptions(opts))
}

type documentFile struct {
	Fieldsets map[string]fieldsetFile `json:"fieldsets" yaml:"fieldsets"`
}

type fieldsetFile struct {
	TitleKey       string         `json:"titleKey,omitempty" yaml:"titleKey,omitempty"`
	InitialValue   map[string]any `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	Fields         []fieldFile    `json:"fields" yaml:"fields"`
	FormValidators []any          `json:"formValidators,omitempty" yaml:"formValidators,omitempty"`
}

type fieldFile struct {
	Name           string               `json:"name" yaml:"name"`
	Type           string               `json:"type,omitempty" yaml:"type,omitempty"`
	LabelKey       string               `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	PlaceholderKey string               `json:"placeholderKey,omitempty" yaml:"placeholderKey,omitempty"`
	HintKey        string               `json:"hintKey,omitempty" yaml:"hintKey,omitempty"`
	InputMask      string               `json:"inputMask,omitempty" yaml:"inputMask,omitempty"`
	ReadOnly       bool                 `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Disabled       bool                 `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Options        []model.SelectOption `json:"options,omitempty" yaml:"options,omitempty"`
	Validators     []any                `json:"validators,omitempty" yaml:"validators,omitempty"`
}

func parse(data []byte, source string, o options) ([]Fieldset, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	if len(doc.Fieldsets) == 0 {
		return nil, fmt.Errorf("fieldset: file %s defines no fieldsets", source)
	}

	out := make([]Fieldset, 0, len(doc.Fieldsets))
	for rawID, raw := range doc.Fieldsets {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("fieldset: file %s defines an empty fieldset id", source)
		}
		set, err := normaliseFieldset(id, source, raw, o.registry)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldset: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("fieldset: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseFieldset(id, source string, raw fieldsetFile, reg *validators.Registry) (Fieldset, error) {
	set := Fieldset{
		ID:           id,
		Source:       source,
		TitleKey:     strings.TrimSpace(raw.TitleKey),
		InitialValue: raw.InitialValue,
		Fields:       make([]model.FieldConfig, 0, len(raw.Fields)),
		FieldRules:   make(map[string][]Rule),
	}
	if len(raw.Fields) == 0 {
		return Fieldset{}, fmt.Errorf("fieldset: %q (file %s) has no fields", id, source)
	}

	for idx, rawField := range raw.Fields {
		field, rules, err := normaliseField(rawField, reg)
		if err != nil {
			return Fieldset{}, fmt.Errorf("fieldset: %q (file %s) field %d: %w", id, source, idx, err)
		}
		set.Fields = append(set.Fields, field)
		if len(rules) > 0 {
			set.FieldRules[field.Name] = rules
		}
	}

	formRules, err := parseRules(raw.FormValidators)
	if err != nil {
		return Fieldset{}, fmt.Errorf("fieldset: %q (file %s) form validators: %w", id, source, err)
	}
	for _, rule := range formRules {
		validator, err := reg.BuildForm(rule.Name, rule.Params)
		if err != nil {
			return Fieldset{}, fmt.Errorf("fieldset: %q (file %s): %w", id, source, err)
		}
		set.FormValidators = append(set.FormValidators, validator)
	}
	set.FormRules = formRules

	// Building once surfaces malformed paths at load time.
	if _, err := form.New(set.Fields); err != nil {
		return Fieldset{}, fmt.Errorf("fieldset: %q (file %s): %w", id, source, err)
	}
	return set, nil
}

func normaliseField(raw fieldFile, reg *validators.Registry) (model.FieldConfig, []Rule, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return model.FieldConfig{}, nil, fmt.Errorf("%w: empty name", form.ErrInvalidFieldName)
	}
	fieldType := model.FieldType(strings.TrimSpace(raw.Type))
	if fieldType == "" {
		fieldType = model.FieldTypeText
	}
	if !fieldType.Valid() {
		return model.FieldConfig{}, nil, fmt.Errorf("%w: %q on %q", form.ErrUnknownFieldType, fieldType, name)
	}

	rules, err := parseRules(raw.Validators)
	if err != nil {
		return model.FieldConfig{}, nil, fmt.Errorf("%q: %w", name, err)
	}
	field := model.FieldConfig{
		Name:           name,
		LabelKey:       strings.TrimSpace(raw.LabelKey),
		PlaceholderKey: strings.TrimSpace(raw.PlaceholderKey),
		HintKey:        strings.TrimSpace(raw.HintKey),
		Type:           fieldType,
		Options:        append([]model.SelectOption(nil), raw.Options...),
		InputMask:      raw.InputMask,
		ReadOnly:       raw.ReadOnly,
		Disabled:       raw.Disabled,
	}
	for _, rule := range rules {
		validator, err := reg.Build(rule.Name, rule.Params)
		if err != nil {
			return model.FieldConfig{}, nil, fmt.Errorf("%q: %w", name, err)
		}
		field.Validators = append(field.Validators, validator)
	}
	return field, rules, nil
}

// parseRules accepts bare rule names ("required") and single-key maps
// ({minLength: 3}).
func parseRules(raw []any) ([]Rule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rules := make([]Rule, 0, len(raw))
	for idx, entry := range raw {
		switch typed := entry.(type) {
		case string:
			name := strings.TrimSpace(typed)
			if name == "" {
				return nil, fmt.Errorf("%w: empty name at index %d", ErrInvalidRule, idx)
			}
			rules = append(rules, Rule{Name: name})
		case map[string]any:
			if len(typed) != 1 {
				return nil, fmt.Errorf("%w: entry %d must have exactly one key", ErrInvalidRule, idx)
			}
			for name, params := range typed {
				trimmed := strings.TrimSpace(name)
				if trimmed == "" {
					return nil, fmt.Errorf("%w: empty name at index %d", ErrInvalidRule, idx)
				}
				rules = append(rules, Rule{Name: trimmed, Params: params})
			}
		default:
			return nil, fmt.Errorf("%w: unsupported entry %T at index %d", ErrInvalidRule, entry, idx)
		}
	}
	return rules, nil
}

// Marshal renders fieldsets as a YAML document that LoadFS accepts. Only the
// declarative parts are written: validators appear as their rules.
func Marshal(sets ...Fieldset) ([]byte, error) {
	doc := documentFile{Fieldsets: make(map[string]fieldsetFile, len(sets))}
	for _, set := range sets {
		if set.ID == "" {
			return nil, fmt.Errorf("fieldset: cannot marshal a fieldset without id")
		}
		raw := fieldsetFile{
			TitleKey:       set.TitleKey,
			InitialValue:   set.InitialValue,
			FormValidators: marshalRules(set.FormRules),
		}
		for _, field := range set.Fields {
			raw.Fields = append(raw.Fields, fieldFile{
				Name:           field.Name,
				Type:           string(field.Type),
				LabelKey:       field.LabelKey,
				PlaceholderKey: field.PlaceholderKey,
				HintKey:        field.HintKey,
				InputMask:      field.InputMask,
				ReadOnly:       field.ReadOnly,
				Disabled:       field.Disabled,
				Options:        field.Options,
				Validators:     marshalRules(set.FieldRules[field.Name]),
			})
		}
		doc.Fieldsets[set.ID] = raw
	}
	return yaml.Marshal(doc)
}

func marshalRules(rules []Rule) []any {
	if len(rules) == 0 {
		return nil
	}
	out := make([]any, 0, len(rules))
	for _, rule := range rules {
		if rule.Params == nil {
			out = append(out, rule.Name)
			continue
		}
		out = append(out, map[string]any{rule.Name: rule.Params})
	}
	return out
}

// isDocumentFile matches io/fs names, which always use forward slashes.
func isDocumentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
