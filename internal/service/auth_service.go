package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/config"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/hashing"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/logger"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
)

var _ CredentialAuthenticator = (*AuthService)(nil)

// AuthService implements registration and login over a CredentialRepository.
type AuthService struct {
	credRepo repository.CredentialRepository
	hasher   PasswordHasher
	tokenSvc TokenGenerator
	// bounds concurrent hash derivations
	hashSlots         *semaphore.Weighted
	precheck          bool
	revealUnknownUser bool
	newSalt           func() models.Salt
	// hashed against for unknown users so that login latency does not
	// depend on whether the username exists
	dummySalt models.Salt
}

// NewAuthService creates a new AuthService
func NewAuthService(
	credRepo repository.CredentialRepository,
	hasher PasswordHasher,
	tokenSvc TokenGenerator,
	cfg *config.Config,
) *AuthService {
	slots := cfg.Hashing.MaxConcurrent
	if slots < 1 {
		slots = 1
	}
	return &AuthService{
		credRepo:          credRepo,
		hasher:            hasher,
		tokenSvc:          tokenSvc,
		hashSlots:         semaphore.NewWeighted(int64(slots)),
		precheck:          cfg.Auth.RegisterPrecheck,
		revealUnknownUser: cfg.Auth.RevealUnknownUser,
		newSalt:           hashing.GenerateSalt,
		dummySalt:         hashing.GenerateSalt(),
	}
}

// Register creates a credential record for a new username. Exactly one of
// several concurrent registrations for the same username succeeds; the rest
// get ErrUsernameUnavailable.
func (s *AuthService) Register(ctx context.Context, req models.CredentialsRequest) error {
	l := logger.FromContext(ctx).With().Str("username", req.Username).Logger()

	if req.Username == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}

	if s.precheck {
		// Only saves a hash for usernames that are obviously taken; the
		// conditional create below decides.
		_, err := s.credRepo.GetCredential(ctx, req.Username)
		switch {
		case err == nil, errors.Is(err, repository.ErrMalformedCredential):
			l.Info().Msg("Registration rejected, username taken")
			return ErrUsernameUnavailable
		case errors.Is(err, repository.ErrCredentialNotFound):
		default:
			l.Warn().Err(err).Msg("Registration pre-check failed")
			return fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
		}
	}

	salt := s.newSalt()
	verifier, err := s.deriveVerifier(ctx, salt, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, hashing.ErrPasswordTooLong):
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		case ctx.Err() != nil:
			return fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
		default:
			l.Error().Err(err).Msg("Failed to derive verifier")
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	err = s.credRepo.CreateCredentialIfAbsent(ctx, req.Username, salt, verifier)
	switch {
	case err == nil:
		l.Info().Msg("User registered")
		return nil
	case errors.Is(err, repository.ErrUserExists):
		l.Info().Msg("Registration lost to an existing record")
		return ErrUsernameUnavailable
	default:
		l.Warn().Err(err).Msg("Failed to store credential")
		return fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}
}

// Login checks a password against the stored verifier and issues a session
// token on success.
func (s *AuthService) Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResponse, error) {
	l := logger.FromContext(ctx).With().Str("username", req.Username).Logger()

	if req.Username == "" {
		return nil, s.rejectUnknownUser(ctx, req.Password)
	}

	cred, err := s.credRepo.GetCredential(ctx, req.Username)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrCredentialNotFound):
		l.Debug().Msg("Login for unknown user")
		return nil, s.rejectUnknownUser(ctx, req.Password)
	case errors.Is(err, repository.ErrMalformedCredential):
		l.Error().Err(err).Msg("Stored credential is malformed")
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	default:
		l.Warn().Err(err).Msg("Failed to load credential")
		return nil, fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}

	verifier, err := s.deriveVerifier(ctx, cred.Salt, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, hashing.ErrPasswordTooLong):
			// registration never accepts such a password
			return nil, ErrInvalidCredentials
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
		default:
			l.Error().Err(err).Msg("Failed to derive verifier")
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	if !hashing.Equal(verifier, cred.Verifier) {
		l.Info().Msg("Login failed, wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenSvc.GenerateToken(cred.Username)
	if err != nil {
		l.Error().Err(err).Msg("Failed to issue session token")
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	l.Info().Msg("User logged in")
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) rejectUnknownUser(ctx context.Context, password string) error {
	// result discarded; only the cost matters
	_, _ = s.deriveVerifier(ctx, s.dummySalt, password)
	if s.revealUnknownUser {
		return ErrUnknownUser
	}
	return ErrInvalidCredentials
}

func (s *AuthService) deriveVerifier(ctx context.Context, salt models.Salt, password string) (models.Verifier, error) {
	if err := s.hashSlots.Acquire(ctx, 1); err != nil {
		return models.Verifier{}, fmt.Errorf("waiting for hash slot: %w", err)
	}
	defer s.hashSlots.Release(1)

	return s.hasher.DeriveVerifier(salt, password)
}
