package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/catalog"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <prices|hs|rules> <file|->",
		Short: "Replace one catalog table from a JSON file",
		Long: `Replace one table of the stored catalog from a JSON array of objects.
The other tables are kept. Requires the admin PIN.

Examples:
  customs import prices prices_catalog.json
  customs import hs hs_catalog.json
  cat duty_rules.json | customs import rules -`,
		Args: cobra.ExactArgs(2),
		RunE: runImport,
	}

	addPINFlag(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	section, err := catalog.ParseSection(args[0])
	if err != nil {
		return common.NewUserError("Unknown table; use prices, hs or rules", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireAdmin(cmd, cfg); err != nil {
		return err
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	base, err := store.Get(ctx)
	if errors.Is(err, common.ErrCatalogUnavailable) {
		base = model.NewSnapshot(nil, nil, nil)
	} else if err != nil {
		return err
	}

	next, err := catalog.Apply(base, section, data)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Invalid %s payload", section), err)
	}

	if err := store.Replace(ctx, next); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %s table", section)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSnapshot(next))
	return err
}
