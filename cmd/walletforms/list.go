package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-walletforms/pkg/fieldset"
)

func (a *app) listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available fieldsets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, id := range a.store.IDs() {
				set, _ := a.store.Fieldset(id)
				fmt.Fprintf(w, "%s\t%s\t%d fields\n", id, a.text(set.TitleKey, id), len(set.Fields))
			}
			return w.Flush()
		},
	}
}

func (a *app) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a fieldset as YAML",
		ArgsUsage: "<fieldset>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set, _, err := a.fieldset(cmd)
			if err != nil {
				return err
			}
			out, err := fieldset.Marshal(set)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
}

func (a *app) configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as TOML",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprint(a.stdout, a.cfg.String())
			return err
		},
	}
}
