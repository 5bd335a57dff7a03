package fieldset_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/model"
	"github.com/goliatone/go-walletforms/pkg/validators"
)

func loadCatalog(t *testing.T) *fieldset.Store {
	t.Helper()
	store, err := fieldset.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return store
}

func mustFieldset(t *testing.T, store *fieldset.Store, id string) fieldset.Fieldset {
	t.Helper()
	set, ok := store.Fieldset(id)
	if !ok {
		t.Fatalf("fieldset %q not found", id)
	}
	return set
}

func TestDefault_LoadsCatalog(t *testing.T) {
	store := loadCatalog(t)
	want := []string{"customer.create", "customer.edit", "transactions.filter", "wallet.limits"}
	if diff := cmp.Diff(want, store.IDs()); diff != "" {
		t.Fatalf("catalog ids mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_CustomerEditExtendsCreate(t *testing.T) {
	store := loadCatalog(t)
	create := mustFieldset(t, store, "customer.create")
	edit := mustFieldset(t, store, "customer.edit")

	names := func(set fieldset.Fieldset) []string {
		out := make([]string, 0, len(set.Fields))
		for _, field := range set.Fields {
			out = append(out, field.Name)
		}
		return out
	}
	wantCreate := []string{
		"name", "email", "phone", "dateOfBirth", "nationalId",
		"address.country", "address.city", "address.postalCode", "address.line1",
	}
	if diff := cmp.Diff(wantCreate, names(create)); diff != "" {
		t.Fatalf("create fields mismatch (-want +got):\n%s", diff)
	}
	wantEdit := []string{
		"name", "email", "phone", "walletNumber", "dateOfBirth", "nationalId",
		"address.country", "address.city", "address.postalCode", "address.line1",
		"kycStatus", "isActive",
	}
	if diff := cmp.Diff(wantEdit, names(edit)); diff != "" {
		t.Fatalf("edit fields mismatch (-want +got):\n%s", diff)
	}

	wallet := edit.Fields[3]
	if !wallet.Disabled || !wallet.ReadOnly {
		t.Fatalf("walletNumber should be disabled and read-only: %+v", wallet)
	}
	kyc := edit.Fields[10]
	if kyc.Type != model.FieldTypeSelect || len(kyc.Options) != 5 || kyc.Options[0].LabelKey != "common.all" {
		t.Fatalf("unexpected kycStatus options: %+v", kyc)
	}

	wantRules := []fieldset.Rule{
		{Name: "required"},
		{Name: "dateOfBirth", Params: map[string]any{"minAge": 18, "maxAge": 120}},
	}
	if diff := cmp.Diff(wantRules, create.FieldRules["dateOfBirth"]); diff != "" {
		t.Fatalf("dateOfBirth rules mismatch (-want +got):\n%s", diff)
	}
	if create.InitialValue != nil {
		t.Fatalf("create starts empty, got %v", create.InitialValue)
	}
}

func TestCatalog_CustomerCreateValidates(t *testing.T) {
	set := mustFieldset(t, loadCatalog(t), "customer.create")
	f, err := set.NewForm()
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}

	edits := map[string]any{
		"name":               "Ayşe Yılmaz",
		"email":              "ayse@example.com",
		"phone":              "+905321234567",
		"dateOfBirth":        "1990-05-15",
		"nationalId":         "12345678901",
		"address.country":    "Türkiye",
		"address.city":       "İstanbul",
		"address.postalCode": "34000",
		"address.line1":      "Bağdat Caddesi 1",
	}
	for path, value := range edits {
		if err := f.SetValue(path, value); err != nil {
			t.Fatalf("SetValue(%q): %v", path, err)
		}
	}
	payload, ok := f.Submit()
	if !ok {
		for _, path := range f.Paths() {
			if msg := f.Error(path); msg != nil {
				t.Errorf("%s: %s", path, msg.Key)
			}
		}
		t.Fatalf("expected valid submit")
	}
	if _, ok := payload["isActive"]; ok {
		t.Fatalf("create form has no isActive control: %v", payload)
	}

	if err := f.SetValue("nationalId", "0123456789"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if diff := cmp.Diff(&form.Message{Key: "validation.nationalIdStartsWithZero"}, f.DisplayError("nationalId")); diff != "" {
		t.Fatalf("display error mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_WalletLimitsWiresFormValidator(t *testing.T) {
	set := mustFieldset(t, loadCatalog(t), "wallet.limits")
	f, err := set.NewForm(form.WithInitialValue(map[string]any{"dailyLimit": 1000, "monthlyLimit": 20000}))
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if err := f.SetValue("dailyLimit", 25000); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !f.FormErrors().Has(model.CodeLimitMismatch) {
		t.Fatalf("expected limitMismatch, got %v", f.FormErrors())
	}
	if diff := cmp.Diff([]fieldset.Rule{{Name: "walletLimits", Params: map[string]any{"daily": "dailyLimit", "monthly": "monthlyLimit"}}}, set.FormRules); diff != "" {
		t.Fatalf("form rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_TransactionFilterDefaultsToAll(t *testing.T) {
	set := mustFieldset(t, loadCatalog(t), "transactions.filter")
	f, err := set.NewForm()
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	want := map[string]any{"type": "", "direction": "", "currency": "", "from": nil, "to": nil}
	if diff := cmp.Diff(want, f.Value()); diff != "" {
		t.Fatalf("filter defaults mismatch (-want +got):\n%s", diff)
	}
	if err := f.SetValue("currency", "EUR"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	f.ResetTo(set.InitialValue)
	if f.HasChanges() {
		t.Fatalf("reset to defaults should clear changes")
	}
}

func TestParse_JSONDocument(t *testing.T) {
	doc := []byte(`{
  "fieldsets": {
    "beneficiary": {
      "fields": [
        {"name": "iban", "validators": ["required", {"minLength": 26}]},
        {"name": "holder.name", "validators": ["fullName"]}
      ]
    }
  }
}`)
	sets, err := fieldset.Parse(doc, "inline.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sets) != 1 || sets[0].ID != "beneficiary" {
		t.Fatalf("unexpected sets: %+v", sets)
	}
	set := sets[0]
	if set.Fields[0].Type != model.FieldTypeText {
		t.Fatalf("missing type should default to text, got %q", set.Fields[0].Type)
	}
	if len(set.Fields[0].Validators) != 2 {
		t.Fatalf("expected 2 validators, got %d", len(set.Fields[0].Validators))
	}
	if err := set.Fields[0].Validators[1]("TR12"); err == nil || err.Code != model.CodeMinLength {
		t.Fatalf("minLength from JSON params not applied: %+v", err)
	}
}

func TestParse_CustomRegistry(t *testing.T) {
	reg := validators.NewRegistry()
	reg.Register("iban", func(any) (model.Validator, error) {
		return func(any) *model.ValidationError { return model.NewError("iban") }, nil
	})
	doc := []byte("fieldsets:\n  transfer:\n    fields:\n      - name: iban\n        validators: [iban]\n")

	if _, err := fieldset.Parse(doc, "transfer.yaml"); !errors.Is(err, validators.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule with the default registry, got %v", err)
	}
	sets, err := fieldset.Parse(doc, "transfer.yaml", fieldset.WithRegistry(reg))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := sets[0].Fields[0].Validators[0]("x"); got == nil || got.Code != "iban" {
		t.Fatalf("custom rule not resolved: %+v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"bad rule entry", "fieldsets:\n  x:\n    fields:\n      - name: a\n        validators: [{min: 1, max: 2}]\n", fieldset.ErrInvalidRule},
		{"bad params", "fieldsets:\n  x:\n    fields:\n      - name: a\n        validators: [{minLength: many}]\n", validators.ErrInvalidParams},
		{"bad type", "fieldsets:\n  x:\n    fields:\n      - name: a\n        type: slider\n", form.ErrUnknownFieldType},
		{"path collision", "fieldsets:\n  x:\n    fields:\n      - name: a\n      - name: a.b\n", form.ErrPathCollision},
		{"unknown form rule", "fieldsets:\n  x:\n    fields:\n      - name: a\n    formValidators: [nope]\n", validators.ErrUnknownRule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fieldset.Parse([]byte(tc.doc), "case.yaml")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := fieldset.Parse([]byte("  "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestStore_AddFSRejectsDuplicates(t *testing.T) {
	store := loadCatalog(t)
	extra := fstest.MapFS{
		"limits.yaml": {Data: []byte("fieldsets:\n  wallet.limits:\n    fields:\n      - name: dailyLimit\n")},
		"notes.txt":   {Data: []byte("ignored")},
	}
	if err := store.AddFS(extra); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	extra = fstest.MapFS{
		"sub/beneficiary.yml": {Data: []byte("fieldsets:\n  beneficiary:\n    fields:\n      - name: iban\n")},
	}
	if err := store.AddFS(extra); err != nil {
		t.Fatalf("AddFS: %v", err)
	}
	if _, ok := store.Fieldset("beneficiary"); !ok {
		t.Fatalf("expected beneficiary to be added")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	store := loadCatalog(t)
	original := mustFieldset(t, store, "wallet.limits")

	data, err := fieldset.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	sets, err := fieldset.Parse(data, "roundtrip.yaml")
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	got := sets[0]
	if diff := cmp.Diff(original.FieldRules, got.FieldRules); diff != "" {
		t.Fatalf("field rules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original.FormRules, got.FormRules); diff != "" {
		t.Fatalf("form rules mismatch (-want +got):\n%s", diff)
	}
	if len(got.FormValidators) != 1 {
		t.Fatalf("form validator not rebuilt")
	}
}
