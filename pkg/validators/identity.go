package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-walletforms/pkg/model"
)

const (
	maxEmailLength      = 254
	maxEmailLocalLength = 64
	walletNumberLength  = 16
	nationalIDLength    = 11
	minPhoneDigits      = 7
	maxPhoneDigits      = 15
)

var (
	emailRe  = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+@[A-Za-z0-9-]+(?:\\.[A-Za-z0-9-]+)+$")
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]+$`)
)

// StrictEmail is stricter than the usual browser check: the domain needs a
// dot, consecutive dots are rejected, and RFC 5321 length limits apply.
func StrictEmail() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if utf8.RuneCountInString(raw) > maxEmailLength {
			return model.NewError(model.CodeEmail)
		}
		parts := strings.Split(raw, "@")
		if len(parts) != 2 {
			return model.NewError(model.CodeEmail)
		}
		local, domain := parts[0], parts[1]
		if local == "" || domain == "" || utf8.RuneCountInString(local) > maxEmailLocalLength {
			return model.NewError(model.CodeEmail)
		}
		if strings.Contains(raw, "..") {
			return model.NewError(model.CodeEmail)
		}
		if !emailRe.MatchString(raw) {
			return model.NewError(model.CodeEmail)
		}
		return nil
	}
}

// PhoneNumber accepts an optional leading '+' followed by 7 to 15 digits and
// nothing else.
func PhoneNumber() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if !phoneRe.MatchString(raw) {
			return model.NewError(model.CodePhoneInvalid)
		}
		digits := strings.TrimPrefix(raw, "+")
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			return model.NewError(model.CodePhoneInvalid)
		}
		return nil
	}
}

// WalletNumber accepts exactly 16 digits without separators.
func WalletNumber() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if !digitsRe.MatchString(raw) || len(raw) != walletNumberLength {
			return model.NewError(model.CodeWalletNumberInvalid)
		}
		return nil
	}
}

// NationalID checks the format of an 11-digit national identity number.
// The leading-zero rule is reported before the numeric and length rules.
// No checksum is computed.
func NationalID() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		if strings.HasPrefix(raw, "0") {
			return model.NewError(model.CodeNationalIDStartsWithZero)
		}
		if !digitsRe.MatchString(raw) {
			return model.NewError(model.CodeNationalIDNumeric)
		}
		if len(raw) != nationalIDLength {
			return model.NewError(model.CodeNationalIDLength)
		}
		return nil
	}
}

// NationalIDChecksum verifies the two check digits of an 11-digit national
// identity number: the tenth digit is (7 * sum of odd positions - sum of even
// positions among the first nine) mod 10, the eleventh is the sum of the
// first ten mod 10. Values NationalID would reject are left to it.
func NationalIDChecksum() model.Validator {
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if len(raw) != nationalIDLength || strings.HasPrefix(raw, "0") || !digitsRe.MatchString(raw) {
			return nil
		}
		var d [nationalIDLength]int
		for i := range raw {
			d[i] = int(raw[i] - '0')
		}
		odd := d[0] + d[2] + d[4] + d[6] + d[8]
		even := d[1] + d[3] + d[5] + d[7]
		tenth := ((odd*7-even)%10 + 10) % 10
		sum := 0
		for _, digit := range d[:10] {
			sum += digit
		}
		if d[9] != tenth || d[10] != sum%10 {
			return model.NewError(model.CodeNationalIDChecksum)
		}
		return nil
	}
}
