package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	args := m.Called(ctx, username)
	cred, _ := args.Get(0).(*models.Credential)
	return cred, args.Error(1)
}

func (m *MockCredentialRepository) CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error {
	args := m.Called(ctx, username, salt, verifier)
	return args.Error(0)
}
