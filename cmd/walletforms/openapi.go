package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
)

func (a *app) openapiCmd() *cli.Command {
	return &cli.Command{
		Name:      "openapi",
		Usage:     "Derive a fieldset from an OpenAPI request body",
		ArgsUsage: "<document>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "operation",
				Aliases: []string{"o"},
				Usage:   "Operation id; lists the usable operations when empty",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := strings.TrimSpace(cmd.Args().First())
			if path == "" {
				return errors.New("openapi document path required")
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			operation := cmd.String("operation")
			if operation == "" {
				ids, err := fieldset.OperationIDs(ctx, raw)
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(a.stdout, id)
				}
				return nil
			}

			set, err := fieldset.FromOpenAPI(ctx, raw, operation)
			if err != nil {
				return err
			}
			a.logger.Debug("fieldset derived", "operation", operation, "fields", len(set.Fields))
			out, err := fieldset.Marshal(set)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
}
