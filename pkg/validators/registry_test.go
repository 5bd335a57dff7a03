package validators_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-walletforms/pkg/model"
	"github.com/goliatone/go-walletforms/pkg/validators"
)

func TestRegistry_BuildsBuiltins(t *testing.T) {
	reg := validators.NewRegistry()

	required, err := reg.Build(validators.RuleRequired, nil)
	if err != nil {
		t.Fatalf("Build required: %v", err)
	}
	if code(required(nil)) != model.CodeRequired {
		t.Fatalf("registry required should fail on nil")
	}

	minLength, err := reg.Build(validators.RuleMinLength, 3)
	if err != nil {
		t.Fatalf("Build minLength: %v", err)
	}
	if code(minLength("ab")) != model.CodeMinLength {
		t.Fatalf("minLength(3) should reject two characters")
	}

	digits, err := reg.Build(validators.RuleDigitsLength, map[string]any{"min": 10, "max": 10})
	if err != nil {
		t.Fatalf("Build digitsLength: %v", err)
	}
	if code(digits("12345")) != model.CodeMinLength {
		t.Fatalf("digitsLength should reject five digits")
	}

	dob, err := reg.Build(validators.RuleDateOfBirth, map[string]any{"minAge": 18})
	if err != nil {
		t.Fatalf("Build dateOfBirth: %v", err)
	}
	if code(dob("2999-01-01")) != model.CodeDateInFuture {
		t.Fatalf("dateOfBirth should reject future dates")
	}
}

func TestRegistry_BuildForm(t *testing.T) {
	reg := validators.NewRegistry()
	validate, err := reg.BuildForm(validators.RuleWalletLimits, map[string]any{"daily": "limits.daily", "monthly": "limits.monthly"})
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}
	controls := &stubControls{
		values: map[string]any{"limits.daily": 5, "limits.monthly": 1},
		errors: map[string]model.Errors{},
	}
	if code(validate(controls)) != model.CodeLimitMismatch {
		t.Fatalf("expected mismatch on custom paths")
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := validators.NewRegistry()

	if _, err := reg.Build("luhn", nil); !errors.Is(err, validators.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if _, err := reg.BuildForm(validators.RuleRequired, nil); !errors.Is(err, validators.ErrUnknownRule) {
		t.Fatalf("field rules are not form rules, got %v", err)
	}
	if _, err := reg.Build(validators.RuleMinLength, nil); !errors.Is(err, validators.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for missing value, got %v", err)
	}
	if _, err := reg.Build(validators.RuleMin, "lots"); !errors.Is(err, validators.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for non-numeric value, got %v", err)
	}
	if _, err := reg.Build(validators.RulePattern, "("); !errors.Is(err, validators.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for bad pattern, got %v", err)
	}
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	reg := validators.NewRegistry()
	reg.Register("iban", func(any) (model.Validator, error) {
		return func(value any) *model.ValidationError {
			if value == "bad" {
				return model.NewError("iban")
			}
			return nil
		}, nil
	})

	v, err := reg.Build("iban", nil)
	if err != nil {
		t.Fatalf("Build custom: %v", err)
	}
	if code(v("bad")) != "iban" {
		t.Fatalf("custom rule not used")
	}

	found := false
	for _, name := range reg.Names() {
		if name == "iban" {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom rule missing from Names: %v", reg.Names())
	}
}
