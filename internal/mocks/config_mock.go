package mocks

import (
	"time"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/config"
)

const TestPepper = "PEPPER"

// CreateTestConfig returns a config using the lowest bcrypt cost so tests
// that hash for real stay fast.
func CreateTestConfig() *config.Config {
	return &config.Config{
		Port:      "0",
		JWTSecret: "test-jwt-secret-for-auth-tests",
		Hashing: config.HashingConfig{
			Pepper:        TestPepper,
			Cost:          4,
			MaxConcurrent: 4,
		},
		Auth: config.AuthConfig{
			RegisterPrecheck: true,
		},
		Session: config.SessionConfig{
			TokenDuration: 15 * time.Minute,
			Issuer:        "scs-credential-server",
			Audience:      "scs-client-app",
		},
		CredentialStore: config.StoreMemory,
	}
}
