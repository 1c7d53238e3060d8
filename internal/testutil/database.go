// Package testutil provides shared fixtures and database setup for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/storage"
)

// TestDB represents a migrated in-memory catalog repository.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	Snapshot *model.Snapshot
}

// SetupTestDB creates a new in-memory test database seeded with snapshot.
// A nil snapshot leaves the repository empty. Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.BasicSnapshot())
func SetupTestDB(t *testing.T, snapshot *model.Snapshot) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Snapshot: snapshot})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Snapshot       *model.Snapshot
	Path           string
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Snapshot != nil {
		if err := store.Replace(ctx, opts.Snapshot); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage:  store,
		Snapshot: opts.Snapshot,
	}
}
