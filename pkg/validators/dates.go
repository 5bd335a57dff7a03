package validators

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-walletforms/pkg/model"
)

const earliestBirthYear = 1900

var isoDateRe = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)

// DateOfBirthOptions bounds the age derived from a date of birth. Zero values
// disable the corresponding bound. Now defaults to time.Now.
type DateOfBirthOptions struct {
	MinAge int              `json:"minAge,omitempty" yaml:"minAge,omitempty"`
	MaxAge int              `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
	Now    func() time.Time `json:"-" yaml:"-"`
}

// DateOfBirth parses a strict YYYY-MM-DD value, rejects calendar-invalid and
// future dates, and checks the age as of today against the configured bounds.
func DateOfBirth(opts DateOfBirthOptions) model.Validator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return func(value any) *model.ValidationError {
		raw := strings.TrimSpace(stringValue(value))
		if raw == "" {
			return nil
		}
		current := now()
		dob, ok := parseISODate(raw, current.Location())
		if !ok {
			return model.NewError(model.CodeDateInvalid)
		}

		today := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, current.Location())
		if dob.After(today) {
			return model.NewError(model.CodeDateInFuture)
		}

		age := ageOn(dob, today)
		if opts.MinAge > 0 && age < opts.MinAge {
			return model.NewErrorWithParams(model.CodeMinAge, map[string]any{
				model.ParamRequiredAge: opts.MinAge,
				model.ParamActualAge:   age,
			})
		}
		if opts.MaxAge > 0 && age > opts.MaxAge {
			return model.NewErrorWithParams(model.CodeMaxAge, map[string]any{
				model.ParamRequiredAge: opts.MaxAge,
				model.ParamActualAge:   age,
			})
		}
		return nil
	}
}

func parseISODate(raw string, loc *time.Location) (time.Time, bool) {
	match := isoDateRe.FindStringSubmatch(raw)
	if match == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	if year < earliestBirthYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	// time.Date normalises overflow (Feb 30 -> Mar 2); a round trip mismatch
	// means the calendar date does not exist.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// ageOn returns completed years between dob and day.
func ageOn(dob, day time.Time) int {
	age := day.Year() - dob.Year()
	if day.Month() < dob.Month() || (day.Month() == dob.Month() && day.Day() < dob.Day()) {
		age--
	}
	return age
}
