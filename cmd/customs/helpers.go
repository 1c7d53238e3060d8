package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/auth"
	"github.com/bassam-st/bassam-customs-ai/internal/cache"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/config"
	"github.com/bassam-st/bassam-customs-ai/internal/engine"
	"github.com/bassam-st/bassam-customs-ai/internal/storage"
)

// loadConfig resolves configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}
	return cfg, nil
}

// initStorage opens and migrates the catalog database.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openCache opens the fetch cache, creating its directory.
func openCache(cfg *config.Config) (*cache.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return cache.Open(cfg.CachePath)
}

// loadEngine builds an engine from the stored catalog.
func loadEngine(ctx context.Context, store *storage.SQLiteStorage) (*engine.Engine, error) {
	e := engine.New()
	if err := e.Reload(ctx, store); err != nil {
		if errors.Is(err, common.ErrCatalogUnavailable) {
			return nil, common.NewUserError("No catalog stored. Run `customs sync` or `customs import` first.", err)
		}
		return nil, err
	}
	return e, nil
}

// requireAdmin verifies the admin PIN from --pin or an interactive prompt.
func requireAdmin(cmd *cobra.Command, cfg *config.Config) error {
	verifier, err := auth.NewBcryptVerifier(cfg.PINHash)
	if err != nil {
		return common.NewUserError("Admin PIN is not configured. Run `customs admin hash-pin` and set admin.pin_hash.", err)
	}

	pin, _ := cmd.Flags().GetString("pin")
	if pin == "" {
		if _, err := fmt.Fprint(cmd.ErrOrStderr(), cli.FormatPrompt("Admin PIN")); err != nil {
			return err
		}
		pin, err = cli.NewLineReader(cmd.InOrStdin()).ReadLine(cmd.Context())
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read PIN: %w", err)
		}
	}

	if err := verifier.Verify(cmd.Context(), pin); err != nil {
		return common.NewUserError("Wrong admin PIN", err)
	}
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func addPINFlag(cmd *cobra.Command) {
	cmd.Flags().String("pin", "", "admin PIN (prompted when omitted)")
}
