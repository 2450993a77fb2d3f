package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/config"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

var _ TokenGenerator = (*TokenService)(nil)

var (
	ErrInvalidToken  = errors.New("invalid session token")
	errMissingSecret = errors.New("session signing secret is not configured")
)

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	jwtSecret []byte
	issuer    string
	audience  string
	lifetime  time.Duration
	now       func() time.Time
}

// NewTokenService creates a TokenService
func NewTokenService(secret string, cfg config.SessionConfig) *TokenService {
	return &TokenService{
		jwtSecret: []byte(secret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		lifetime:  cfg.TokenDuration,
		now:       time.Now,
	}
}

// GenerateToken creates a new JWT for a user
func (s *TokenService) GenerateToken(username string) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, errMissingSecret
	}
	now := s.now()
	exp := now.Add(s.lifetime)
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// NumericDate has second precision; report what the token carries
	return tokenString, claims.ExpiresAt.Time, nil
}

func (s *TokenService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, new(models.SessionClaims), s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	if len(s.jwtSecret) == 0 {
		return nil, errMissingSecret
	}
	return s.jwtSecret, nil
}
