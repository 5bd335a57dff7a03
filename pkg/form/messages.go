package form

import (
	"strings"

	"github.com/goliatone/go-walletforms/pkg/model"
)

// Message keys returned by error resolution.
const (
	KeyInvalid       = "validation.invalid"
	KeyLimitMismatch = "validation.limitMismatch"
)

// Message is a display-message reference plus interpolation params.
type Message struct {
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
}

type messageRule struct {
	code   model.ErrorCode
	key    string
	params func(model.ValidationError) map[string]any
}

func rename(from, to string) func(model.ValidationError) map[string]any {
	return func(err model.ValidationError) map[string]any {
		return map[string]any{to: err.Param(from)}
	}
}

// messageRules is ordered: the first code present on a control wins.
var messageRules = []messageRule{
	{code: model.CodeRequired, key: "validation.required"},
	{code: model.CodeMultipleSpaces, key: "validation.multipleSpaces"},
	{code: model.CodeEmail, key: "validation.email"},
	{code: model.CodeNationalIDNumeric, key: "validation.nationalIdNumeric"},
	{code: model.CodeNationalIDLength, key: "validation.nationalIdLength"},
	{code: model.CodeNationalIDStartsWithZero, key: "validation.nationalIdStartsWithZero"},
	{code: model.CodeNationalIDChecksum, key: "validation.nationalIdChecksum"},
	{code: model.CodeMin, key: "validation.min", params: rename(model.ParamMin, "min")},
	{code: model.CodeMax, key: "validation.max", params: rename(model.ParamMax, "max")},
	{code: model.CodeMinLength, key: "validation.minLength", params: rename(model.ParamRequiredLength, "min")},
	{code: model.CodeMaxLength, key: "validation.maxLength", params: rename(model.ParamRequiredLength, "max")},
	{code: model.CodeSurnameRequired, key: "validation.surnameRequired"},
	{code: model.CodePhoneInvalid, key: "validation.phoneInvalid"},
	{code: model.CodeWalletNumberInvalid, key: "validation.walletNumberInvalid"},
	{code: model.CodeNameInvalid, key: "validation.nameInvalid"},
	{code: model.CodeUnsafeChars, key: "validation.unsafeChars"},
	{code: model.CodeDateInvalid, key: "validation.dateInvalid"},
	{code: model.CodeDateInFuture, key: "validation.dateInFuture"},
	{code: model.CodeMinAge, key: "validation.minAge", params: rename(model.ParamRequiredAge, "min")},
	{code: model.CodeMaxAge, key: "validation.maxAge", params: rename(model.ParamRequiredAge, "max")},
	{code: model.CodePattern, key: "validation.pattern"},
	{code: model.CodeLimitMismatch, key: KeyLimitMismatch},
}

// ResolveMessage picks the message for a set of errors: the first entry of
// the precedence table that is present, then a server message, then the
// generic invalid key. Empty input yields nil.
func ResolveMessage(errs model.Errors) *Message {
	if len(errs) == 0 {
		return nil
	}
	for _, rule := range messageRules {
		err, ok := errs[rule.code]
		if !ok {
			continue
		}
		msg := &Message{Key: rule.key}
		if rule.params != nil {
			msg.Params = rule.params(err)
		}
		return msg
	}
	if err, ok := errs[model.CodeAPI]; ok {
		if text, _ := err.Param(model.ParamMessage).(string); strings.TrimSpace(text) != "" {
			return &Message{Key: text}
		}
	}
	return &Message{Key: KeyInvalid}
}

// Error resolves the message for the control at path regardless of its
// display state. limitMismatch is reported here like any other code.
func (f *Form) Error(path string) *Message {
	c := f.lookup(path)
	if c == nil {
		return nil
	}
	return ResolveMessage(c.errors)
}

// DisplayError is the inline message for the control at path: nil unless
// the control is StatusInvalid. limitMismatch is never shown inline; it is
// reported once through FormMessages.
func (f *Form) DisplayError(path string) *Message {
	if f.FieldStatus(path) != StatusInvalid {
		return nil
	}
	msg := f.Error(path)
	if msg == nil || msg.Key == KeyLimitMismatch {
		return nil
	}
	return msg
}

// FormMessages resolves every form-level error, one message per code.
// Codes in the precedence table come first in table order; the rest follow
// in lexical order.
func (f *Form) FormMessages() []Message {
	if f == nil || len(f.formErrors) == 0 {
		return nil
	}
	remaining := f.formErrors.Clone()
	out := make([]Message, 0, len(remaining))
	for _, rule := range messageRules {
		if err, ok := remaining[rule.code]; ok {
			out = append(out, *ResolveMessage(model.Errors{rule.code: err}))
			delete(remaining, rule.code)
		}
	}
	for _, code := range remaining.Codes() {
		out = append(out, *ResolveMessage(model.Errors{code: remaining[code]}))
	}
	return out
}

// MessageKeys lists every key ResolveMessage can produce apart from server
// texts, in precedence order.
func MessageKeys() []string {
	keys := make([]string, 0, len(messageRules)+1)
	for _, rule := range messageRules {
		keys = append(keys, rule.key)
	}
	return append(keys, KeyInvalid)
}
