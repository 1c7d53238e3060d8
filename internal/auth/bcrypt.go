// Package auth gates administrative catalog operations behind a PIN.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
)

// MinPINLength is the shortest PIN HashPIN accepts.
const MinPINLength = 4

// BcryptVerifier checks a PIN against a stored bcrypt hash.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for the given bcrypt hash.
func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, fmt.Errorf("%w: admin.pin_hash is not set", common.ErrMissingConfig)
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("%w: admin.pin_hash: %w", common.ErrInvalidConfig, err)
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

// Verify returns common.ErrUnauthorized when secret does not match.
func (v *BcryptVerifier) Verify(ctx context.Context, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}
	return nil
}

// HashPIN returns a bcrypt hash suitable for admin.pin_hash.
func HashPIN(pin string) (string, error) {
	if len([]rune(pin)) < MinPINLength {
		return "", fmt.Errorf("%w: PIN must be at least %d characters", common.ErrInvalidConfig, MinPINLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}
