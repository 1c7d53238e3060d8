package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/catalog"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/config"
	"github.com/bassam-st/bassam-customs-ai/internal/engine"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or clear the stored catalog",
	}

	cmd.AddCommand(catalogShowCmd())
	cmd.AddCommand(catalogClearCmd())

	return cmd
}

func catalogShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Summarize the stored catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snapshot, err := store.Get(ctx)
			if err != nil {
				return common.NewUserError("No catalog stored. Run `customs sync` or `customs import` first.", err)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), snapshot)
			}

			e := engine.New()
			if err := e.Load(snapshot); err != nil {
				return err
			}
			stats := e.Stats()

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, cli.RenderSnapshot(snapshot)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Searchable: %d products, %d synonyms, %d intent patterns\n",
				stats.Products, stats.Synonyms, stats.IntentPatterns)
			return err
		},
	}

	cmd.Flags().Bool("json", false, "print the full catalog as JSON")

	return cmd
}

func catalogClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored catalog",
		Long: `Remove every stored table. Requires the admin PIN.

With --cache, the payloads kept from the last remote sync are dropped too.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireAdmin(cmd, cfg); err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Clear(ctx); err != nil {
				return err
			}
			if dropCache, _ := cmd.Flags().GetBool("cache"); dropCache {
				if err := clearCache(cfg); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Catalog cleared"))
			return err
		},
	}

	cmd.Flags().Bool("cache", false, "also drop cached remote payloads")
	addPINFlag(cmd)

	return cmd
}

// clearCache removes the cached payload of every section.
func clearCache(cfg *config.Config) error {
	payloads, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = payloads.Close() }()

	for _, section := range []catalog.Section{
		catalog.SectionPrices,
		catalog.SectionClassifications,
		catalog.SectionRules,
	} {
		if err := payloads.Delete(string(section)); err != nil {
			return fmt.Errorf("failed to drop cached %s payload: %w", section, err)
		}
	}
	return nil
}
