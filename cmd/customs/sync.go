package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/catalog"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/config"
	"github.com/bassam-st/bassam-customs-ai/internal/service"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the catalog and store it",
		Long: `Fetch the prices, classification and duty rule tables and replace the
stored catalog with them. Tables are fetched from the configured URLs, falling
back to the last good copy in the local cache when a fetch fails. With --dir the
tables are read from a local directory instead. Requires the admin PIN.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().String("dir", "", "read the tables from a local directory")
	addPINFlag(cmd)

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireAdmin(cmd, cfg); err != nil {
		return err
	}

	var source service.CatalogSource
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		source = catalog.NewDirSource(config.ExpandPath(dir))
	} else {
		payloads, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = payloads.Close() }()

		source, err = catalog.NewHTTPSource(catalog.HTTPConfig{
			Cache:     payloads,
			PricesURL: cfg.Catalog.PricesURL,
			HSURL:     cfg.Catalog.HSURL,
			RulesURL:  cfg.Catalog.RulesURL,
			Retry:     cfg.Catalog.RetryOptions(),
			Timeout:   cfg.Catalog.Timeout,
		})
		if err != nil {
			return err
		}
	}

	snapshot, err := source.Fetch(ctx)
	if err != nil {
		return common.NewUserError("Could not fetch the catalog", err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Replace(ctx, snapshot); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatSuccess("Catalog synced")); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, cli.RenderSnapshot(snapshot))
	return err
}
