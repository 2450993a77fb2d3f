package mocks

import (
	"time"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTokenGenerator is a mock type for the TokenGenerator type
type MockTokenGenerator struct {
	mock.Mock
}

// GenerateToken provides a mock function with given fields: username
func (_m *MockTokenGenerator) GenerateToken(username string) (string, time.Time, error) {
	ret := _m.Called(username)

	return ret.Get(0).(string), ret.Get(1).(time.Time), ret.Error(2)
}

// ValidateToken provides a mock function with given fields: tokenString
func (_m *MockTokenGenerator) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	ret := _m.Called(tokenString)

	claims, _ := ret.Get(0).(*models.SessionClaims)
	return claims, ret.Error(1)
}
