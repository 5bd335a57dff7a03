package validators

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-walletforms/pkg/model"
)

// DigitsLengthOptions bounds the number of digits in a value. Zero disables a
// bound.
type DigitsLengthOptions struct {
	Min int `json:"min,omitempty" yaml:"min,omitempty"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

// DigitsLength strips every non-digit character and checks the remaining
// digit count against the inclusive [Min, Max] range. Values without digits
// are left to other rules.
func DigitsLength(opts DigitsLengthOptions) model.Validator {
	return func(value any) *model.ValidationError {
		raw := stringValue(value)
		if raw == "" {
			return nil
		}
		count := len(digitsOnly(raw))
		if count == 0 {
			return nil
		}
		if opts.Min > 0 && count < opts.Min {
			return lengthError(model.CodeMinLength, opts.Min, count)
		}
		if opts.Max > 0 && count > opts.Max {
			return lengthError(model.CodeMaxLength, opts.Max, count)
		}
		return nil
	}
}

// MinLength fails when a string (or collection) is shorter than n. Empty
// values pass.
func MinLength(n int) model.Validator {
	return func(value any) *model.ValidationError {
		if isEmpty(value) {
			return nil
		}
		size, ok := length(value)
		if !ok || size >= n {
			return nil
		}
		return lengthError(model.CodeMinLength, n, size)
	}
}

// MaxLength fails when a string (or collection) is longer than n.
func MaxLength(n int) model.Validator {
	return func(value any) *model.ValidationError {
		size, ok := length(value)
		if !ok || size <= n {
			return nil
		}
		return lengthError(model.CodeMaxLength, n, size)
	}
}

func lengthError(code model.ErrorCode, required, actual int) *model.ValidationError {
	return model.NewErrorWithParams(code, map[string]any{
		model.ParamRequiredLength: required,
		model.ParamActualLength:   actual,
	})
}

// Min fails when a numeric value is below limit. Empty and non-numeric
// values pass.
func Min(limit float64) model.Validator {
	return func(value any) *model.ValidationError {
		n, ok := numberValue(value)
		if !ok || n >= limit {
			return nil
		}
		return model.NewErrorWithParams(model.CodeMin, map[string]any{
			model.ParamMin:    limit,
			model.ParamActual: n,
		})
	}
}

// Max fails when a numeric value is above limit.
func Max(limit float64) model.Validator {
	return func(value any) *model.ValidationError {
		n, ok := numberValue(value)
		if !ok || n <= limit {
			return nil
		}
		return model.NewErrorWithParams(model.CodeMax, map[string]any{
			model.ParamMax:    limit,
			model.ParamActual: n,
		})
	}
}

// Pattern matches the whole value against expr; leading ^ and trailing $ are
// implied.
func Pattern(expr string) (model.Validator, error) {
	anchored := "^(?:" + strings.TrimSuffix(strings.TrimPrefix(expr, "^"), "$") + ")$"
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, err
	}
	return func(value any) *model.ValidationError {
		if isEmpty(value) {
			return nil
		}
		raw := stringValue(value)
		if re.MatchString(raw) {
			return nil
		}
		return model.NewErrorWithParams(model.CodePattern, map[string]any{
			model.ParamRequiredPattern: anchored,
		})
	}, nil
}

// digitsOnly keeps the ASCII digits of s.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
