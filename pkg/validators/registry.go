package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-walletforms/pkg/model"
)

// Built-in rule names understood by the registry.
const (
	RuleRequired         = "required"
	RuleTrimmedRequired  = "trimmedRequired"
	RuleNoMultipleSpaces = "noMultipleSpaces"
	RuleFullName         = "fullName"
	RuleName             = "name"
	RuleSafeText         = "safeText"
	RuleStrictEmail      = "strictEmail"
	RuleDigitsLength     = "digitsLength"
	RulePhoneNumber      = "phoneNumber"
	RuleWalletNumber     = "walletNumber"
	RuleNationalID       = "nationalId"
	RuleNationalIDSum    = "nationalIdChecksum"
	RuleDateOfBirth      = "dateOfBirth"
	RuleMinLength        = "minLength"
	RuleMaxLength        = "maxLength"
	RuleMin              = "min"
	RuleMax              = "max"
	RulePattern          = "pattern"

	RuleWalletLimits = "walletLimits"
)

var (
	// ErrUnknownRule is returned when a rule name is not registered.
	ErrUnknownRule = errors.New("validators: unknown rule")
	// ErrInvalidParams is returned when rule parameters cannot be decoded.
	ErrInvalidParams = errors.New("validators: invalid rule parameters")
)

// Factory builds a field validator from decoded parameters. params is nil
// when the rule was referenced by name only.
type Factory func(params any) (model.Validator, error)

// FormFactory builds a form-level validator.
type FormFactory func(params any) (model.FormValidator, error)

// Registry resolves validators by rule name so field lists can be declared in
// data files. Registration is safe for concurrent use; later registrations
// replace earlier ones with the same name.
type Registry struct {
	mu    sync.RWMutex
	field map[string]Factory
	form  map[string]FormFactory
}

// NewRegistry returns a registry with every built-in rule registered.
func NewRegistry() *Registry {
	reg := &Registry{
		field: make(map[string]Factory),
		form:  make(map[string]FormFactory),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds a field rule.
func (r *Registry) Register(name string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.field[trimmed] = factory
}

// RegisterForm adds a form-level rule.
func (r *Registry) RegisterForm(name string, factory FormFactory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.form[trimmed] = factory
}

// Build resolves a field rule.
func (r *Registry) Build(name string, params any) (model.Validator, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	r.mu.RLock()
	factory, ok := r.field[strings.TrimSpace(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	v, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("validators: rule %q: %w", name, err)
	}
	return v, nil
}

// BuildForm resolves a form-level rule.
func (r *Registry) BuildForm(name string, params any) (model.FormValidator, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	r.mu.RLock()
	factory, ok := r.form[strings.TrimSpace(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	v, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("validators: form rule %q: %w", name, err)
	}
	return v, nil
}

// Names lists registered field rules in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.field))
	for name := range r.field {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) registerBuiltins() {
	plain := map[string]func() model.Validator{
		RuleRequired:         Required,
		RuleTrimmedRequired:  TrimmedRequired,
		RuleNoMultipleSpaces: NoMultipleSpaces,
		RuleFullName:         FullName,
		RuleName:             Name,
		RuleSafeText:         SafeText,
		RuleStrictEmail:      StrictEmail,
		RulePhoneNumber:      PhoneNumber,
		RuleWalletNumber:     WalletNumber,
		RuleNationalID:       NationalID,
		RuleNationalIDSum:    NationalIDChecksum,
	}
	for name, ctor := range plain {
		r.Register(name, func(any) (model.Validator, error) { return ctor(), nil })
	}

	r.Register(RuleDigitsLength, func(params any) (model.Validator, error) {
		var opts DigitsLengthOptions
		if err := decodeParams(params, &opts); err != nil {
			return nil, err
		}
		return DigitsLength(opts), nil
	})
	r.Register(RuleDateOfBirth, func(params any) (model.Validator, error) {
		var opts DateOfBirthOptions
		if err := decodeParams(params, &opts); err != nil {
			return nil, err
		}
		return DateOfBirth(opts), nil
	})
	r.Register(RuleMinLength, func(params any) (model.Validator, error) {
		var n int
		if err := decodeScalar(params, &n); err != nil {
			return nil, err
		}
		return MinLength(n), nil
	})
	r.Register(RuleMaxLength, func(params any) (model.Validator, error) {
		var n int
		if err := decodeScalar(params, &n); err != nil {
			return nil, err
		}
		return MaxLength(n), nil
	})
	r.Register(RuleMin, func(params any) (model.Validator, error) {
		var n float64
		if err := decodeScalar(params, &n); err != nil {
			return nil, err
		}
		return Min(n), nil
	})
	r.Register(RuleMax, func(params any) (model.Validator, error) {
		var n float64
		if err := decodeScalar(params, &n); err != nil {
			return nil, err
		}
		return Max(n), nil
	})
	r.Register(RulePattern, func(params any) (model.Validator, error) {
		var expr string
		if err := decodeScalar(params, &expr); err != nil {
			return nil, err
		}
		v, err := Pattern(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		return v, nil
	})

	r.RegisterForm(RuleWalletLimits, func(params any) (model.FormValidator, error) {
		var opts struct {
			Daily   string `yaml:"daily"`
			Monthly string `yaml:"monthly"`
		}
		if err := decodeParams(params, &opts); err != nil {
			return nil, err
		}
		return WalletLimitsConsistency(opts.Daily, opts.Monthly), nil
	})
}

// decodeParams maps loosely typed params (as produced by JSON or YAML
// decoding) onto dst by round-tripping through YAML. nil params leave dst at
// its zero value.
func decodeParams(params any, dst any) error {
	if params == nil {
		return nil
	}
	raw, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// decodeScalar is decodeParams for rules that require a single value.
func decodeScalar(params any, dst any) error {
	if params == nil {
		return fmt.Errorf("%w: value required", ErrInvalidParams)
	}
	return decodeParams(params, dst)
}
