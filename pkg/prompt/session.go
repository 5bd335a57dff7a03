package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/i18n"
	"github.com/goliatone/go-walletforms/pkg/model"
)

// RetryKey is the message asked after a submit fails on cross-field checks.
const RetryKey = "common.retry"

var errUnparsable = errors.New("prompt: unparsable answer")

// Option customises a Session.
type Option func(*Session)

// WithDriver swaps the terminal driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTranslator resolves labels and messages through t for locale.
func WithTranslator(t i18n.Translator, locale string) Option {
	return func(s *Session) {
		s.translator = t
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			s.locale = trimmed
		}
	}
}

// WithLogger sets the logger used for rejected answers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxAttempts bounds how often a single field is asked again. Zero means
// no bound.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// Session walks a form field by field on a terminal.
type Session struct {
	driver      Driver
	translator  i18n.Translator
	locale      string
	logger      *slog.Logger
	maxAttempts int
}

// New constructs a Session backed by survey prompts unless WithDriver says
// otherwise.
func New(opts ...Option) *Session {
	s := &Session{
		locale: i18n.DefaultLocale,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Fill asks for every editable control of f, re-asking a control while it
// shows an inline error, then submits. When the submit fails on form-level
// errors the messages are shown and the user may go through the fields
// again; declining yields ErrFormInvalid. Disabled and read-only controls
// keep their current values.
func (s *Session) Fill(ctx context.Context, f *form.Form) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if f == nil || len(f.Paths()) == 0 {
		return nil, ErrNoForm
	}

	for {
		for _, path := range f.Paths() {
			state, ok := f.Control(path)
			if !ok || state.Disabled || state.Field.ReadOnly {
				continue
			}
			if err := s.askField(ctx, f, state); err != nil {
				return nil, err
			}
		}

		value, ok := f.Submit()
		if ok {
			return value, nil
		}

		for _, msg := range f.FormMessages() {
			if err := s.driver.Info(ctx, i18n.Message(s.translator, s.locale, &msg)); err != nil {
				return nil, err
			}
		}
		s.logger.Debug("form rejected", "errors", len(f.FormErrors()))

		retry, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: i18n.Text(s.translator, s.locale, RetryKey, "Try again?"),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, ErrFormInvalid
		}
	}
}

func (s *Session) askField(ctx context.Context, f *form.Form, state form.ControlState) error {
	label := s.label(state.Field)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, _ := f.Get(state.Path)
		answer, err := s.ask(ctx, state.Field, label, current)
		if errors.Is(err, errUnparsable) {
			s.logger.Debug("answer not understood", "path", state.Path)
			if err := s.driver.Info(ctx, s.rejection(label, i18n.Text(s.translator, s.locale, form.KeyInvalid, ""))); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := f.SetValue(state.Path, answer); err != nil {
				return err
			}
			f.MarkTouched(state.Path)
			msg := f.DisplayError(state.Path)
			if msg == nil {
				return nil
			}
			s.logger.Debug("answer rejected", "path", state.Path, "key", msg.Key)
			if err := s.driver.Info(ctx, s.rejection(label, i18n.Message(s.translator, s.locale, msg))); err != nil {
				return err
			}
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, state.Path)
		}
	}
}

func (s *Session) ask(ctx context.Context, field model.FieldConfig, label string, current any) (any, error) {
	help := s.help(field)
	switch field.Type {
	case model.FieldTypeCheckbox:
		checked, _ := current.(bool)
		return s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: help})
	case model.FieldTypeSelect:
		labels := make([]string, len(field.Options))
		defaultIdx := -1
		for i, option := range field.Options {
			labels[i] = i18n.Text(s.translator, s.locale, option.LabelKey, fmt.Sprint(option.Value))
			if defaultIdx < 0 && current != nil && fmt.Sprint(option.Value) == fmt.Sprint(current) {
				defaultIdx = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: defaultIdx, Help: help})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil, errUnparsable
		}
		return field.Options[idx].Value, nil
	case model.FieldTypeNumber:
		raw, err := s.driver.Input(ctx, InputConfig{Message: label, Default: display(current), Help: help})
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errUnparsable
		}
		return n, nil
	default:
		return s.driver.Input(ctx, InputConfig{Message: label, Default: display(current), Help: help})
	}
}

func (s *Session) label(field model.FieldConfig) string {
	return i18n.Text(s.translator, s.locale, field.LabelKey, field.Name)
}

func (s *Session) help(field model.FieldConfig) string {
	if field.HintKey != "" {
		return i18n.Text(s.translator, s.locale, field.HintKey, "")
	}
	if field.PlaceholderKey != "" {
		return i18n.Text(s.translator, s.locale, field.PlaceholderKey, "")
	}
	if field.InputMask != "" {
		return field.InputMask
	}
	return ""
}

func (s *Session) rejection(label, msg string) string {
	return label + ": " + msg
}

func display(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
