// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// CatalogRepository defines the contract for our persistence layer.
// Implementations replace the whole snapshot at once; partial writes are never visible.
type CatalogRepository interface {
	// Get returns the stored snapshot, or common.ErrCatalogUnavailable when nothing is stored.
	Get(ctx context.Context) (*model.Snapshot, error)
	Replace(ctx context.Context, snapshot *model.Snapshot) error
	Clear(ctx context.Context) error
	Close() error
}

// CatalogSource produces a fresh snapshot from somewhere outside the repository.
type CatalogSource interface {
	Fetch(ctx context.Context) (*model.Snapshot, error)
}

// CredentialVerifier gates administrative operations.
// The query path never depends on it.
type CredentialVerifier interface {
	Verify(ctx context.Context, secret string) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
