package validators

import "github.com/goliatone/go-walletforms/pkg/model"

// Default control names used by the wallet limits form.
const (
	DefaultDailyLimitPath   = "dailyLimit"
	DefaultMonthlyLimitPath = "monthlyLimit"
)

// WalletLimitsConsistency requires the daily limit to stay below the monthly
// limit. On mismatch it flags limitMismatch on both controls and returns the
// same code as the form-level error.
//
// The flag is cleared on both controls when either value is empty or not a
// number, and when either control already holds another error so the more
// fundamental problem is not masked. Only the limitMismatch entry is ever
// added or removed; repeated runs over unchanged values leave the error sets
// as they are.
func WalletLimitsConsistency(dailyPath, monthlyPath string) model.FormValidator {
	if dailyPath == "" {
		dailyPath = DefaultDailyLimitPath
	}
	if monthlyPath == "" {
		monthlyPath = DefaultMonthlyLimitPath
	}
	return func(controls model.ControlSet) *model.ValidationError {
		if controls == nil {
			return nil
		}
		reset := func() *model.ValidationError {
			setFlag(controls, dailyPath, false)
			setFlag(controls, monthlyPath, false)
			return nil
		}

		dailyRaw, _ := controls.Value(dailyPath)
		monthlyRaw, _ := controls.Value(monthlyPath)
		daily, dailyOK := numberValue(dailyRaw)
		monthly, monthlyOK := numberValue(monthlyRaw)
		if !dailyOK || !monthlyOK {
			return reset()
		}

		if hasBlockingError(controls, dailyPath) || hasBlockingError(controls, monthlyPath) {
			return reset()
		}

		mismatch := daily >= monthly
		setFlag(controls, dailyPath, mismatch)
		setFlag(controls, monthlyPath, mismatch)
		if mismatch {
			return model.NewError(model.CodeLimitMismatch)
		}
		return nil
	}
}

func hasBlockingError(controls model.ControlSet, path string) bool {
	return len(controls.Errors(path).Without(model.CodeLimitMismatch)) > 0
}

// setFlag writes only when the flag actually changes.
func setFlag(controls model.ControlSet, path string, on bool) {
	present := controls.Errors(path).Has(model.CodeLimitMismatch)
	switch {
	case on && !present:
		controls.SetError(path, model.ValidationError{Code: model.CodeLimitMismatch})
	case !on && present:
		controls.ClearError(path, model.CodeLimitMismatch)
	}
}
