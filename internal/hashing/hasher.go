// Package hashing derives and compares password verifiers.
//
// A verifier is the raw 24-byte bcrypt output computed over the password
// followed by a process-wide pepper, using a per-user 16-byte salt.
package hashing

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

const (
	MinCost = 4
	MaxCost = 31
	// MaxKeySize is the number of key bytes bcrypt can make use of.
	MaxKeySize = 72
)

var (
	ErrPasswordTooLong = fmt.Errorf("peppered password exceeds %d bytes", MaxKeySize)
	ErrInvalidCost     = fmt.Errorf("bcrypt cost must be between %d and %d", MinCost, MaxCost)
	ErrEmptyPepper     = errors.New("pepper must not be empty")
)

// Hasher holds the secret material shared by every derivation in the process.
// It is immutable after construction and safe for concurrent use.
type Hasher struct {
	pepper []byte
	cost   uint32
}

// NewHasher copies the pepper so later changes to the caller's slice cannot
// affect derived verifiers.
func NewHasher(pepper []byte, cost int) (*Hasher, error) {
	if len(pepper) == 0 {
		return nil, ErrEmptyPepper
	}
	if len(pepper) >= MaxKeySize {
		return nil, fmt.Errorf("pepper of %d bytes leaves no room for a password: %w", len(pepper), ErrPasswordTooLong)
	}
	if cost < MinCost || cost > MaxCost {
		return nil, ErrInvalidCost
	}
	p := make([]byte, len(pepper))
	copy(p, pepper)
	return &Hasher{pepper: p, cost: uint32(cost)}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return int(h.cost)
}

// DeriveVerifier computes bcrypt(cost, salt, password || pepper).
// The only error is ErrPasswordTooLong.
func (h *Hasher) DeriveVerifier(salt models.Salt, password string) (models.Verifier, error) {
	var v models.Verifier
	if len(password)+len(h.pepper) > MaxKeySize {
		return v, ErrPasswordTooLong
	}

	key := make([]byte, 0, len(password)+len(h.pepper))
	key = append(key, password...)
	key = append(key, h.pepper...)
	defer clear(key)

	out, err := eksBlowfish(h.cost, salt[:], key)
	if err != nil {
		return v, err
	}
	if len(out) != models.VerifierSize {
		panic(fmt.Sprintf("hashing: bcrypt produced %d bytes, want %d", len(out), models.VerifierSize))
	}
	copy(v[:], out)
	return v, nil
}

// Equal reports whether two verifiers match. The running time does not depend
// on where the first differing byte is.
func Equal(a, b models.Verifier) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
