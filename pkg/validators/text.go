package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-walletforms/pkg/model"
)

var (
	multipleSpacesRe = regexp.MustCompile(`\s{2,}`)
	nameWordRe       = regexp.MustCompile(`^\p{L}[\p{L}'-]*$`)
	personNameRe     = regexp.MustCompile(`^\p{L}[\p{L} .'-]{1,99}$`)
)

// Required fails on nil, "" and empty collections. false and 0 are values.
func Required() model.Validator {
	return func(value any) *model.ValidationError {
		if isEmpty(value) {
			return model.NewError(model.CodeRequired)
		}
		return nil
	}
}

// TrimmedRequired fails when a non-empty string holds only whitespace. Use it
// next to Required, which handles the truly empty case.
func TrimmedRequired() model.Validator {
	return func(value any) *model.ValidationError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return model.NewError(model.CodeRequired)
		}
		return nil
	}
}

// NoMultipleSpaces fails when two or more whitespace characters appear in a
// row anywhere in the value.
func NoMultipleSpaces() model.Validator {
	return func(value any) *model.ValidationError {
		raw := stringValue(value)
		if raw == "" {
			return nil
		}
		if multipleSpacesRe.MatchString(raw) {
			return model.NewError(model.CodeMultipleSpaces)
		}
		return nil
	}
}

// FullName expects a first name and at least one surname, single-space
// separated. Each part is two or more letters and may contain apostrophes or
// hyphens after the first letter.
func FullName() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if multipleSpacesRe.MatchString(raw) {
			return model.NewError(model.CodeMultipleSpaces)
		}
		parts := strings.Split(raw, " ")
		if len(parts) < 2 {
			return model.NewError(model.CodeSurnameRequired)
		}
		for _, part := range parts {
			if utf8.RuneCountInString(part) < 2 || !nameWordRe.MatchString(part) {
				return model.NewError(model.CodeNameInvalid)
			}
		}
		return nil
	}
}

// Name accepts a single-line personal name of 2 to 100 characters starting
// with a letter.
func Name() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if !personNameRe.MatchString(raw) {
			return model.NewError(model.CodeNameInvalid)
		}
		return nil
	}
}

// SafeText rejects angle brackets and control characters.
func SafeText() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		for _, r := range raw {
			if r == '<' || r == '>' || isControl(r) {
				return model.NewError(model.CodeUnsafeChars)
			}
		}
		return nil
	}
}

func isControl(r rune) bool {
	return r <= 0x1f || r == 0x7f
}
