package i18n

import (
	"strings"

	"github.com/goliatone/go-walletforms/pkg/form"
)

// Message renders a resolved form message. Keys the translator does not know
// are returned as text with markup stripped, which is how server-provided
// messages surface.
func Message(t Translator, locale string, msg *form.Message) string {
	if msg == nil {
		return ""
	}
	if t == nil {
		return Sanitize(msg.Key)
	}
	var args []any
	if len(msg.Params) > 0 {
		args = []any{msg.Params}
	}
	out, err := t.Translate(locale, msg.Key, args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return Sanitize(msg.Key)
	}
	return out
}

// Text translates key, returning fallback when it is missing. An empty
// fallback falls back to the key itself.
func Text(t Translator, locale, key, fallback string) string {
	key = strings.TrimSpace(key)
	if fallback == "" {
		fallback = key
	}
	if t == nil || key == "" {
		return fallback
	}
	out, err := t.Translate(locale, key)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return out
}
