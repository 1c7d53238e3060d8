// Package storage provides the data persistence layer for the customs catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRule  = errors.New("invalid duty rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSnapshot checks a snapshot before it is written.
func validateSnapshot(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}
	for i, rule := range snapshot.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidRule, i, err)
		}
	}
	return nil
}
