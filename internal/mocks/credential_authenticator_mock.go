package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockCredentialAuthenticator struct {
	mock.Mock
}

func (m *MockCredentialAuthenticator) Register(ctx context.Context, req models.CredentialsRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockCredentialAuthenticator) Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}
