package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/cli"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Answer one customs question",
		Long: `Answer one free-text question from the stored catalog.

Examples:
  customs ask كم جمارك مودم 300 دولار
  customs ask "سعر 5 طن حديد تسليح"
  customs ask --json بند ملابس`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().Bool("json", false, "print the structured result as JSON")
	cmd.Flags().Bool("resolve", false, "print the full resolution record as JSON")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	e, err := loadEngine(ctx, store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if resolve, _ := cmd.Flags().GetBool("resolve"); resolve {
		rq, err := e.Resolve(ctx, query)
		if err != nil {
			return err
		}
		return writeJSON(out, rq)
	}

	result, err := e.Answer(ctx, query)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, result)
	}

	_, err = fmt.Fprintln(out, cli.RenderResult(result))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
