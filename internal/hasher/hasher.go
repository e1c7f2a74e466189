// Package hasher produces salted adaptive hashes of secrets with bcrypt.
package hasher

import (
	"errors"
	"fmt"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when none is configured.
	DefaultCost = 12

	// MaxSecretBytes is the longest input bcrypt hashes.
	MaxSecretBytes = 72
)

var (
	// ErrInvalidCost is returned for a work factor bcrypt does not accept.
	ErrInvalidCost = errors.New("invalid bcrypt cost")

	// ErrTooLong is returned for secrets bcrypt would otherwise truncate.
	ErrTooLong = fmt.Errorf("password longer than %d bytes", MaxSecretBytes)
)

// Bcrypt hashes secrets at a fixed cost.
type Bcrypt struct {
	cost int
}

// New returns a hasher for cost, which must lie in
// [bcrypt.MinCost, bcrypt.MaxCost].
func New(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash returns the modular-crypt bcrypt string for secret. Secrets over
// MaxSecretBytes fail with ErrTooLong rather than being truncated.
func (b *Bcrypt) Hash(secret string) (string, error) {
	if len(secret) > MaxSecretBytes {
		return "", fmt.Errorf("bcrypt hash: %w", ErrTooLong)
	}

	pw := []byte(secret)
	defer zcrypto.Erase(pw)

	h, err := bcrypt.GenerateFromPassword(pw, b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(h), nil
}

// Verify reports whether secret matches hash. A mismatch is not an error.
func (b *Bcrypt) Verify(secret, hash string) (bool, error) {
	pw := []byte(secret)
	defer zcrypto.Erase(pw)

	err := bcrypt.CompareHashAndPassword([]byte(hash), pw)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("bcrypt verify: %w", err)
}
