package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/i18n"
	"github.com/goliatone/go-walletforms/pkg/model"
)

func defaultCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return c
}

func TestDefault_LoadsLocales(t *testing.T) {
	c := defaultCatalog(t)
	if diff := cmp.Diff([]string{"en", "tr"}, c.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_CoversEveryMessageKey(t *testing.T) {
	c := defaultCatalog(t)
	for _, locale := range []string{"en", "tr"} {
		for _, key := range form.MessageKeys() {
			if _, err := c.Translate(locale, key, map[string]any{"min": 1, "max": 2}); err != nil {
				t.Errorf("%s: %v", locale, err)
			}
		}
	}
}

func TestCatalog_CoversEmbeddedFieldsets(t *testing.T) {
	c := defaultCatalog(t)
	store, err := fieldset.Default()
	if err != nil {
		t.Fatalf("fieldset.Default: %v", err)
	}
	for _, id := range store.IDs() {
		set, _ := store.Fieldset(id)
		keys := []string{set.TitleKey}
		for _, field := range set.Fields {
			keys = append(keys, field.LabelKey)
			if field.PlaceholderKey != "" {
				keys = append(keys, field.PlaceholderKey)
			}
			for _, option := range field.Options {
				keys = append(keys, option.LabelKey)
			}
		}
		for _, key := range keys {
			for _, locale := range []string{"en", "tr"} {
				if _, err := c.Translate(locale, key); err != nil {
					t.Errorf("%s %s: %v", id, locale, err)
				}
			}
		}
	}
}

func TestTranslate_InterpolatesParams(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Translate("en", "validation.minLength", map[string]any{"min": 3})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Must be at least 3 characters." {
		t.Fatalf("unexpected message %q", got)
	}

	got, err = c.Translate("tr", "validation.min", "min", float64(1))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "En az 1 olmalıdır." {
		t.Fatalf("unexpected message %q", got)
	}

	got, err = c.Translate("en", "validation.max", map[string]any{"max": 2.5})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Must be at most 2.5." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTranslate_FallbackChain(t *testing.T) {
	c := defaultCatalog(t)
	if err := c.Add("tr-TR", []byte("wallet:\n  dailyLimit: Günlük harcama limiti\n")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	cases := []struct {
		locale, key, want string
	}{
		{"tr_TR", "wallet.dailyLimit", "Günlük harcama limiti"},
		{"tr-TR", "wallet.monthlyLimit", "Aylık limit"},
		{"de", "wallet.monthlyLimit", "Monthly limit"},
		{"", "common.all", "All"},
	}
	for _, tc := range cases {
		got, err := c.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("Translate(%q, %q): %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Errorf("Translate(%q, %q) = %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}

	if _, err := c.Translate("en", "validation.nope"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestTranslate_DoesNotEscapeText(t *testing.T) {
	c := defaultCatalog(t)
	got, err := c.Translate("en", "validation.unsafeChars")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "The characters < and > are not allowed." {
		t.Fatalf("unexpected message %q", got)
	}

	if err := c.Add("en", []byte(`greeting: "Hello {{ name }}"`)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err = c.Translate("en", "greeting", "name", "<b>Ayşe</b>")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Hello <b>Ayşe</b>" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAddFS_RejectsMalformedCatalog(t *testing.T) {
	c := i18n.New()
	fsys := fstest.MapFS{"en.yaml": {Data: []byte("validation:\n  list: [a, b]\n")}}
	if err := c.AddFS(fsys); !errors.Is(err, i18n.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestAddFS_NestedLocaleFiles(t *testing.T) {
	c := i18n.New()
	fsys := fstest.MapFS{
		"locales/de.YML":     {Data: []byte("wallet:\n  dailyLimit: Tageslimit\n")},
		"locales/fr.json":    {Data: []byte(`{"wallet": {"dailyLimit": "Limite quotidienne"}}`)},
		"locales/README.md":  {Data: []byte("ignored")},
	}
	if err := c.AddFS(fsys); err != nil {
		t.Fatalf("AddFS: %v", err)
	}
	if diff := cmp.Diff([]string{"de", "fr"}, c.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if !c.Has("de", "wallet.dailyLimit") {
		t.Fatalf("expected de catalog from nested file")
	}
}

func TestMessage_RendersFormMessages(t *testing.T) {
	c := defaultCatalog(t)

	msg := &form.Message{Key: "validation.minAge", Params: map[string]any{"min": 18}}
	if got := i18n.Message(c, "tr", msg); got != "Müşteri en az 18 yaşında olmalıdır." {
		t.Fatalf("unexpected message %q", got)
	}
	server := &form.Message{Key: "Email is already registered"}
	if got := i18n.Message(c, "en", server); got != server.Key {
		t.Fatalf("server text should pass through, got %q", got)
	}
	if got := i18n.Message(nil, "en", msg); got != msg.Key {
		t.Fatalf("nil translator should return the key, got %q", got)
	}
	if got := i18n.Message(c, "en", nil); got != "" {
		t.Fatalf("nil message should render empty, got %q", got)
	}

	if got := i18n.Text(c, "en", "customers.address.city", ""); got != "City" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := i18n.Text(c, "en", "customers.unknown", "Fallback"); got != "Fallback" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestMessage_EndToEndWithForm(t *testing.T) {
	c := defaultCatalog(t)
	f, err := form.New([]model.FieldConfig{{Name: "name", Validators: []model.Validator{
		func(v any) *model.ValidationError {
			return model.NewErrorWithParams(model.CodeMinLength, map[string]any{model.ParamRequiredLength: 3})
		},
	}}})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	if err := f.SetValue("name", "a"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := i18n.Message(c, "en", f.DisplayError("name")); got != "Must be at least 3 characters." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessage_StripsMarkupFromServerText(t *testing.T) {
	c := defaultCatalog(t)
	f, err := form.New([]model.FieldConfig{{Name: "name"}})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	f.SetAPIError("name", "  <b>Customer's</b> name is taken  ")

	msg := f.Error("name")
	if msg == nil || msg.Key != "  <b>Customer's</b> name is taken  " {
		t.Fatalf("form should keep the literal text, got %+v", msg)
	}
	if got := i18n.Message(c, "en", msg); got != "Customer's name is taken" {
		t.Fatalf("unexpected rendered text %q", got)
	}
	if got := i18n.Message(nil, "en", msg); got != "Customer's name is taken" {
		t.Fatalf("nil translator should sanitize too, got %q", got)
	}
}
