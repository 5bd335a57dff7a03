package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/i18n"
)

func (a *app) checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a set of values against a fieldset",
		ArgsUsage: "<fieldset>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "values",
				Aliases:  []string{"v"},
				Usage:    "JSON or YAML file holding the field values",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "edit",
				Usage: "Load the values as the stored record instead of user edits",
			},
			&cli.StringFlag{
				Name:  "server-errors",
				Usage: "JSON or YAML file holding a field -> messages payload returned by the API",
			},
		},
		Action: a.checkAction,
	}
}

func (a *app) checkAction(ctx context.Context, cmd *cli.Command) error {
	set, f, err := a.fieldset(cmd)
	if err != nil {
		return err
	}
	values := map[string]any{}
	if err := readDocument(cmd.String("values"), &values); err != nil {
		return err
	}

	if cmd.Bool("edit") {
		f.Patch(values)
	} else if err := a.applyEdits(f, values); err != nil {
		return err
	}

	value, ok := f.Submit()
	var serverForm []string
	if path := cmd.String("server-errors"); path != "" {
		payload := map[string][]string{}
		if err := readDocument(path, &payload); err != nil {
			return err
		}
		mapping := f.ApplyServerErrors(payload)
		serverForm = mapping.Form
		a.logger.Debug("server errors applied", "fields", len(mapping.Fields), "form", len(mapping.Form))
		ok = ok && f.Valid() && len(serverForm) == 0
	}
	a.logger.Debug("form submitted", "fieldset", set.ID, "valid", ok)

	if !ok {
		a.printErrors(f, serverForm)
		return errInvalidValues
	}

	payload, err := shapePayload(set.ID, value)
	if err != nil {
		return err
	}
	return writeJSON(a.stdout, payload)
}

// applyEdits replays values as user edits in field order. Values addressed
// at disabled or read-only controls are ignored.
func (a *app) applyEdits(f *form.Form, values map[string]any) error {
	for _, path := range f.Paths() {
		value, ok := lookupValue(values, path)
		if !ok {
			continue
		}
		err := f.SetValue(path, value)
		switch {
		case errors.Is(err, form.ErrFieldDisabled), errors.Is(err, form.ErrFieldReadOnly):
			a.logger.Debug("value ignored", "path", path, "reason", err)
		case err != nil:
			return err
		default:
			f.MarkTouched(path)
		}
	}
	return nil
}

func (a *app) printErrors(f *form.Form, serverForm []string) {
	for _, path := range f.Paths() {
		msg := f.DisplayError(path)
		if msg == nil {
			continue
		}
		field, _ := f.Field(path)
		fmt.Fprintf(a.stdout, "%s: %s\n", a.text(field.LabelKey, path), a.message(msg))
	}
	for _, msg := range f.FormMessages() {
		fmt.Fprintln(a.stdout, a.message(&msg))
	}
	for _, msg := range serverForm {
		fmt.Fprintln(a.stdout, i18n.Sanitize(msg))
	}
}

// lookupValue finds path either as a flat dotted key or by walking nested
// maps.
func lookupValue(values map[string]any, path string) (any, bool) {
	if value, ok := values[path]; ok {
		return value, true
	}
	current := any(values)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// shapePayload turns the submitted value into the request body the API
// expects for the known fieldsets.
func shapePayload(id string, value map[string]any) (any, error) {
	switch id {
	case "customer.create":
		return fieldset.CustomerCreatePayload(value)
	case "customer.edit":
		return fieldset.CustomerUpdatePayload(value)
	case "wallet.limits":
		return fieldset.WalletLimitsPayload(value)
	default:
		return value, nil
	}
}

func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
