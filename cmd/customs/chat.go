package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/catalog"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/config"
	"github.com/bassam-st/bassam-customs-ai/internal/engine"
	"github.com/bassam-st/bassam-customs-ai/internal/tui"
	"github.com/bassam-st/bassam-customs-ai/internal/tui/themes"
	"github.com/bassam-st/bassam-customs-ai/internal/watcher"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive question and answer session",
		Long: `Open an interactive chat. Type a question and press enter.

With --watch, the catalog is read from a directory holding
prices_catalog.json, hs_catalog.json and optionally duty_rules.json, and is
reloaded whenever one of them changes. The stored catalog is not modified.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	cmd.Flags().String("watch", "", "catalog directory to load and watch for changes")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Int("history", 50, "number of exchanges kept on screen")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watchDir, _ := cmd.Flags().GetString("watch")
	themeName, _ := cmd.Flags().GetString("theme")
	history, _ := cmd.Flags().GetInt("history")

	var (
		e       *engine.Engine
		reloads chan tui.ReloadEvent
		err     error
	)

	if watchDir != "" {
		e, reloads, err = watchCatalog(ctx, config.ExpandPath(watchDir))
	} else {
		e, err = storedEngine(ctx)
	}
	if err != nil {
		return err
	}

	return tui.Run(ctx,
		tui.WithAnswerer(e),
		tui.WithReloads(reloads),
		tui.WithTheme(themes.ByName(themeName)),
		tui.WithMaxHistory(history),
	)
}

func storedEngine(ctx context.Context) (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return loadEngine(ctx, store)
}

// watchCatalog loads the catalog from dir and reloads the engine on change.
// The returned channel is closed when ctx ends.
func watchCatalog(ctx context.Context, dir string) (*engine.Engine, chan tui.ReloadEvent, error) {
	source := catalog.NewDirSource(dir)
	snapshot, err := source.Fetch(ctx)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("Cannot load catalog from %s", dir), err)
	}

	e := engine.New()
	if err := e.Load(snapshot); err != nil {
		return nil, nil, err
	}

	w, err := watcher.New(dir, watcher.DefaultDebounce)
	if err != nil {
		return nil, nil, err
	}

	reloads := make(chan tui.ReloadEvent, 4)
	go func() {
		defer close(reloads)
		defer func() { _ = w.Close() }()

		err := w.Run(ctx, func(paths []string) {
			select {
			case reloads <- reloadFrom(ctx, source, e, paths):
			case <-ctx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			common.LogError(err, "Catalog watcher stopped", common.Fields{"dir": source.Dir()})
		}
	}()

	return e, reloads, nil
}

// reloadFrom refetches the directory catalog into e.
// A failed reload leaves the previous snapshot in place.
func reloadFrom(ctx context.Context, source *catalog.DirSource, e *engine.Engine, paths []string) tui.ReloadEvent {
	snapshot, err := source.Fetch(ctx)
	if err == nil {
		err = e.Load(snapshot)
	}
	if err != nil {
		common.LogError(err, "Catalog reload failed", common.Fields{"dir": source.Dir(), "paths": paths})
		return tui.ReloadEvent{Err: err}
	}

	common.LogInfo("Catalog reloaded", common.Fields{"dir": source.Dir(), "items": len(snapshot.Items)})
	return tui.ReloadEvent{Items: len(snapshot.Items)}
}
