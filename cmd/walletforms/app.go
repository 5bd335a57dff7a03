package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-walletforms/internal/config"
	"github.com/goliatone/go-walletforms/internal/logging"
	"github.com/goliatone/go-walletforms/pkg/fieldset"
	"github.com/goliatone/go-walletforms/pkg/form"
	"github.com/goliatone/go-walletforms/pkg/i18n"
	"github.com/goliatone/go-walletforms/pkg/prompt"
)

var errInvalidValues = errors.New("walletforms: values are invalid")

type app struct {
	stdout io.Writer
	stderr io.Writer

	// driver overrides the survey driver used by fill.
	driver prompt.Driver

	cfg     *config.Config
	logger  *slog.Logger
	store   *fieldset.Store
	catalog *i18n.Catalog
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "walletforms",
		Version:   Version,
		Usage:     "Inspect, check and fill the wallet back-office forms",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "Locale used for labels and messages",
				Sources: cli.EnvVars("WALLETFORMS_LOCALE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars("WALLETFORMS_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.listCmd(),
			a.showCmd(),
			a.checkCmd(),
			a.fillCmd(),
			a.openapiCmd(),
			a.configCmd(),
			versionCmd,
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the
// shared fieldset store and message catalog.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return ctx, err
		}
		cfg = loaded
	}
	if cmd.IsSet("locale") {
		cfg.Locale = strings.TrimSpace(cmd.String("locale"))
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.Level = config.LogLevel(strings.ToLower(cmd.String("log-level")))
	}
	if cmd.IsSet("log-format") {
		cfg.Logging.Format = config.LogFormat(strings.ToLower(cmd.String("log-format")))
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.logger = slog.New(logging.NewHandler(string(cfg.Logging.Format), string(cfg.Logging.Level), a.stderr))

	store, err := fieldset.Default()
	if err != nil {
		return ctx, err
	}
	for _, dir := range cfg.Fieldsets.Dirs {
		if err := store.AddFS(os.DirFS(dir)); err != nil {
			return ctx, fmt.Errorf("load fieldsets from %s: %w", dir, err)
		}
		a.logger.Debug("fieldsets loaded", "dir", dir)
	}
	a.store = store

	catalog, err := i18n.Default(i18n.WithFallbackLocale(cfg.I18n.Fallback))
	if err != nil {
		return ctx, err
	}
	for _, dir := range cfg.I18n.Dirs {
		if err := catalog.AddFS(os.DirFS(dir)); err != nil {
			return ctx, fmt.Errorf("load translations from %s: %w", dir, err)
		}
		a.logger.Debug("translations loaded", "dir", dir)
	}
	a.catalog = catalog
	return ctx, nil
}

func (a *app) fieldset(cmd *cli.Command) (fieldset.Fieldset, *form.Form, error) {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return fieldset.Fieldset{}, nil, errors.New("fieldset id required")
	}
	set, ok := a.store.Fieldset(id)
	if !ok {
		return fieldset.Fieldset{}, nil, fmt.Errorf("%w: %q", fieldset.ErrNotFound, id)
	}
	f, err := set.NewForm()
	if err != nil {
		return fieldset.Fieldset{}, nil, err
	}
	return set, f, nil
}

func (a *app) text(key, fallback string) string {
	return i18n.Text(a.catalog, a.cfg.Locale, key, fallback)
}

func (a *app) message(msg *form.Message) string {
	return i18n.Message(a.catalog, a.cfg.Locale, msg)
}
