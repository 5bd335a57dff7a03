package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/i18n"
	"github.com/goliatone/go-walletforms/pkg/model"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	err       error

	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newSession(t *testing.T, driver Driver, opts ...Option) *Session {
	t.Helper()
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("i18n.Default: %v", err)
	}
	base := []Option{WithDriver(driver), WithTranslator(catalog, "en")}
	return New(append(base, opts...)...)
}

func catalogForm(t *testing.T, id string) *form.Form {
	t.Helper()
	store, err := fieldset.Default()
	if err != nil {
		t.Fatalf("fieldset.Default: %v", err)
	}
	set, ok := store.Fieldset(id)
	if !ok {
		t.Fatalf("fieldset %s not found", id)
	}
	f, err := set.NewForm()
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	return f
}

func TestFill_RepromptsRejectedAnswers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "0", "abc", "1000", "20000"}}
	got, err := newSession(t, driver).Fill(context.Background(), catalogForm(t, "wallet.limits"))
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := map[string]any{"dailyLimit": float64(1000), "monthlyLimit": float64(20000)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"Daily limit: This field is required.",
		"Daily limit: Must be at least 1.",
		"Daily limit: This value is invalid.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_RetriesAfterFormLevelError(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"5000", "1000", "500", "1000"},
		confirm: []bool{true},
	}
	got, err := newSession(t, driver).Fill(context.Background(), catalogForm(t, "wallet.limits"))
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := map[string]any{"dailyLimit": float64(500), "monthlyLimit": float64(1000)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"Daily limit must be lower than the monthly limit."}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_DecliningRetryFails(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"5000", "1000"},
		confirm: []bool{false},
	}
	if _, err := newSession(t, driver).Fill(context.Background(), catalogForm(t, "wallet.limits")); !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
}

func TestFill_SelectsUseTranslatedOptions(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1, 0, 2},
		inputs:    []string{"2026-10-01T00:00", ""},
	}
	got, err := newSession(t, driver).Fill(context.Background(), catalogForm(t, "transactions.filter"))
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := map[string]any{
		"type":      "DEBIT",
		"direction": "",
		"currency":  "USD",
		"from":      "2026-10-01T00:00",
		"to":        "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if len(driver.selects) != 3 {
		t.Fatalf("expected 3 select prompts, got %d", len(driver.selects))
	}
	first := driver.selects[0]
	if diff := cmp.Diff([]string{"All", "Debit", "Credit"}, first.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if first.Message != "Type" || first.DefaultIndex != 0 {
		t.Fatalf("unexpected select config: %+v", first)
	}
}

func TestFill_SkipsReadOnlyAndDisabledControls(t *testing.T) {
	f, err := form.New([]model.FieldConfig{
		{Name: "walletNumber", Type: model.FieldTypeText, ReadOnly: true},
		{Name: "note", Type: model.FieldTypeText, Disabled: true},
		{Name: "isActive", Type: model.FieldTypeCheckbox},
	}, form.WithInitialValue(map[string]any{"walletNumber": "1234567890123456", "isActive": false}))
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}

	driver := &stubDriver{confirm: []bool{true}}
	got, err := New(WithDriver(driver)).Fill(context.Background(), f)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	want := map[string]any{"walletNumber": "1234567890123456", "note": nil, "isActive": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != 0 {
		t.Fatalf("read-only and disabled controls should not be prompted")
	}
}

func TestFill_Errors(t *testing.T) {
	if _, err := New(WithDriver(&stubDriver{})).Fill(context.Background(), nil); !errors.Is(err, ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}

	aborting := &stubDriver{err: ErrAborted}
	if _, err := newSession(t, aborting).Fill(context.Background(), catalogForm(t, "wallet.limits")); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	stubborn := &stubDriver{inputs: []string{"", ""}}
	_, err := newSession(t, stubborn, WithMaxAttempts(2)).Fill(context.Background(), catalogForm(t, "wallet.limits"))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newSession(t, &stubDriver{}).Fill(ctx, catalogForm(t, "wallet.limits")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDisplay(t *testing.T) {
	cases := map[string]any{
		"":     nil,
		"abc":  "abc",
		"1000": float64(1000),
		"2.5":  2.5,
		"true": true,
	}
	for want, value := range cases {
		if got := display(value); got != want {
			t.Errorf("display(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestRetryKeyIsTranslated(t *testing.T) {
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("i18n.Default: %v", err)
	}
	for _, locale := range []string{"en", "tr"} {
		if !catalog.Has(locale, RetryKey) {
			t.Errorf("%s catalog lacks %s", locale, RetryKey)
		}
	}
}
