package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

// CredentialRepository stores one salt/verifier pair per username.
type CredentialRepository interface {
	// GetCredential returns the stored record for username.
	// It should return ErrCredentialNotFound if no record exists,
	// ErrMalformedCredential if the stored record is incomplete or has the wrong sizes,
	// and an error wrapping ErrStoreUnavailable if the backend could not be reached.
	GetCredential(ctx context.Context, username string) (*models.Credential, error)

	// CreateCredentialIfAbsent writes salt and verifier for username in a single
	// conditional write. If two callers race on the same username exactly one
	// succeeds; the others get ErrUserExists and nothing is modified.
	// Backend failures wrap ErrStoreUnavailable.
	CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error
}

// Common errors
var (
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrUserExists          = errors.New("user already exists")
	ErrMalformedCredential = errors.New("stored credential is malformed")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)

// DecodeCredential validates raw salt and verifier bytes read from a backend.
func DecodeCredential(username string, salt, verifier []byte) (*models.Credential, error) {
	if len(salt) != models.SaltSize {
		return nil, fmt.Errorf("%w: salt for %q is %d bytes, want %d", ErrMalformedCredential, username, len(salt), models.SaltSize)
	}
	if len(verifier) != models.VerifierSize {
		return nil, fmt.Errorf("%w: verifier for %q is %d bytes, want %d", ErrMalformedCredential, username, len(verifier), models.VerifierSize)
	}
	cred := &models.Credential{Username: username}
	copy(cred.Salt[:], salt)
	copy(cred.Verifier[:], verifier)
	return cred, nil
}

// Unavailable marks err as a transient backend failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
