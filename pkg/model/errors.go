package model

import "sort"

// ErrorCode identifies one kind of validation failure.
type ErrorCode string

const (
	CodeRequired                 ErrorCode = "required"
	CodeMultipleSpaces           ErrorCode = "multipleSpaces"
	CodeEmail                    ErrorCode = "email"
	CodeNationalIDNumeric        ErrorCode = "nationalIdNumeric"
	CodeNationalIDLength         ErrorCode = "nationalIdLength"
	CodeNationalIDStartsWithZero ErrorCode = "nationalIdStartsWithZero"
	CodeNationalIDChecksum       ErrorCode = "nationalIdChecksum"
	CodeMin                      ErrorCode = "min"
	CodeMax                      ErrorCode = "max"
	CodeMinLength                ErrorCode = "minlength"
	CodeMaxLength                ErrorCode = "maxlength"
	CodeSurnameRequired          ErrorCode = "surnameRequired"
	CodePhoneInvalid             ErrorCode = "phoneInvalid"
	CodeWalletNumberInvalid      ErrorCode = "walletNumberInvalid"
	CodeNameInvalid              ErrorCode = "nameInvalid"
	CodeUnsafeChars              ErrorCode = "unsafeChars"
	CodeDateInvalid              ErrorCode = "dateInvalid"
	CodeDateInFuture             ErrorCode = "dateInFuture"
	CodeMinAge                   ErrorCode = "minAge"
	CodeMaxAge                   ErrorCode = "maxAge"
	CodePattern                  ErrorCode = "pattern"
	// CodeLimitMismatch blocks submission but is reported by a dedicated
	// form-level message rather than inline on the participating fields.
	CodeLimitMismatch ErrorCode = "limitMismatch"
	// CodeAPI marks errors reported by the server. Params["message"] carries the
	// server-provided text.
	CodeAPI ErrorCode = "api"
)

// Param keys used by the built-in codes.
const (
	ParamRequiredLength  = "requiredLength"
	ParamActualLength    = "actualLength"
	ParamRequiredAge     = "requiredAge"
	ParamActualAge       = "actualAge"
	ParamMin             = "min"
	ParamMax             = "max"
	ParamActual          = "actual"
	ParamRequiredPattern = "requiredPattern"
	ParamMessage         = "message"
)

// ValidationError is a tagged validation outcome with optional parameters.
type ValidationError struct {
	Code   ErrorCode      `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// NewError builds a ValidationError without parameters.
func NewError(code ErrorCode) *ValidationError {
	return &ValidationError{Code: code}
}

// NewErrorWithParams builds a ValidationError carrying params.
func NewErrorWithParams(code ErrorCode, params map[string]any) *ValidationError {
	return &ValidationError{Code: code, Params: params}
}

// Param returns a parameter value, or nil when it is missing.
func (e ValidationError) Param(key string) any {
	if e.Params == nil {
		return nil
	}
	return e.Params[key]
}

// Errors holds at most one ValidationError per code.
type Errors map[ErrorCode]ValidationError

// Has reports whether code is present.
func (e Errors) Has(code ErrorCode) bool {
	_, ok := e[code]
	return ok
}

// Codes returns the held codes in lexical order.
func (e Errors) Codes() []ErrorCode {
	if len(e) == 0 {
		return nil
	}
	out := make([]ErrorCode, 0, len(e))
	for code := range e {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy. Nil or empty input yields nil.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for code, err := range e {
		params := err.Params
		if len(params) > 0 {
			params = make(map[string]any, len(err.Params))
			for k, v := range err.Params {
				params[k] = v
			}
		}
		out[code] = ValidationError{Code: err.Code, Params: params}
	}
	return out
}

// Without returns a copy with code removed.
func (e Errors) Without(code ErrorCode) Errors {
	out := e.Clone()
	delete(out, code)
	if len(out) == 0 {
		return nil
	}
	return out
}
