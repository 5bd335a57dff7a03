package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-walletforms/pkg/prompt"
)

func (a *app) fillCmd() *cli.Command {
	return &cli.Command{
		Name:      "fill",
		Usage:     "Fill a fieldset interactively and print the request body",
		ArgsUsage: "<fieldset>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-attempts",
				Usage: "Give up after this many rejected answers for one field (0 means never)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set, f, err := a.fieldset(cmd)
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(a.stdout)
			}
			if err := driver.Info(ctx, a.text(set.TitleKey, set.ID)); err != nil {
				return err
			}

			session := prompt.New(
				prompt.WithDriver(driver),
				prompt.WithTranslator(a.catalog, a.cfg.Locale),
				prompt.WithLogger(a.logger.With("fieldset", set.ID)),
				prompt.WithMaxAttempts(int(cmd.Int("max-attempts"))),
			)
			value, err := session.Fill(ctx, f)
			if err != nil {
				return fmt.Errorf("fill %s: %w", set.ID, err)
			}
			payload, err := shapePayload(set.ID, value)
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, payload)
		},
	}
}
