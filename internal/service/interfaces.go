package service

import (
	"context"
	"time"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

type TokenGenerator interface {
	// GenerateToken issues a session token for a verified username
	GenerateToken(username string) (string, time.Time, error)
	// ValidateToken checks signature, issuer, audience and lifetime
	ValidateToken(tokenString string) (*models.SessionClaims, error)
}

// PasswordHasher derives the stored verifier for a password.
type PasswordHasher interface {
	DeriveVerifier(salt models.Salt, password string) (models.Verifier, error)
}

type CredentialAuthenticator interface {
	// Register stores a new username/password pair
	Register(ctx context.Context, req models.CredentialsRequest) error
	// Login verifies a password and issues a session token
	Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResponse, error)
}
