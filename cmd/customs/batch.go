package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/config"
	"github.com/bassam-st/bassam-customs-ai/internal/engine"
)

// batchLine is one JSON line of batch output.
type batchLine struct {
	Result *answer.Result `json:"result,omitempty"`
	Query  string         `json:"query"`
	Error  string         `json:"error,omitempty"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Answer one query per line and write JSON lines",
		Long: `Answer every non-empty line of a file (or stdin with "-").
Lines starting with # are skipped. Each answer is written as one JSON object
per line, in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	cmd.Flags().Int("workers", runtime.NumCPU(), "number of concurrent workers")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	workers, _ := cmd.Flags().GetInt("workers")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), outPath)

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(config.ExpandPath(args[0]))
		if err != nil {
			return fmt.Errorf("failed to open queries: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	queries, err := cli.NewLineReader(in).ReadQueries(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

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

	var bar *progressbar.ProgressBar
	if !noProgress {
		bar = newProgressBar(cmd.ErrOrStderr(), len(queries))
	}

	lines := answerAll(ctx, e, queries, workers, bar)

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(config.ExpandPath(outPath))
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeLines(out, lines); err != nil {
		return err
	}

	if handler.WasInterrupted() {
		return errors.New("batch interrupted")
	}
	return nil
}

// answerAll answers queries concurrently and returns lines in input order.
// Queries left unanswered after ctx ends carry the context error.
func answerAll(ctx context.Context, e *engine.Engine, queries []string, workers int, bar *progressbar.ProgressBar) []batchLine {
	if workers < 1 {
		workers = 1
	}

	lines := make([]batchLine, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		lines[i].Query = q
		g.Go(func() error {
			result, err := e.Answer(gctx, q)
			if err != nil {
				lines[i].Error = err.Error()
			} else {
				lines[i].Result = &result
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return lines
}

func writeLines(w io.Writer, lines []batchLine) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode answer: %w", err)
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	return nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Answering queries...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
