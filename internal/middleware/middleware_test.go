package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/logger"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/middleware"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/mocks"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/service"
)

func TestSessionAuth(t *testing.T) {
	claims := &models.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	newEcho := func(tokens *mocks.MockTokenGenerator) *echo.Echo {
		e := echo.New()
		e.GET("/protected", func(c echo.Context) error {
			got, ok := c.Get(middleware.SessionContextKey).(*models.SessionClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError)
			}
			return c.String(http.StatusOK, got.Subject)
		}, middleware.SessionAuth(tokens))
		return e
	}

	t.Run("ValidToken", func(t *testing.T) {
		tokens := new(mocks.MockTokenGenerator)
		tokens.On("ValidateToken", "good-token").Return(claims, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
		rec := httptest.NewRecorder()
		newEcho(tokens).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
		tokens.AssertExpectations(t)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		tokens := new(mocks.MockTokenGenerator)
		tokens.On("ValidateToken", "bad-token").Return(nil, service.ErrInvalidToken).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
		rec := httptest.NewRecorder()
		newEcho(tokens).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tokens.AssertExpectations(t)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		tokens := new(mocks.MockTokenGenerator)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		newEcho(tokens).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tokens.AssertNotCalled(t, "ValidateToken", mock.Anything)
	})
}

func TestRequestIDAndContextLogger(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequestID(), middleware.ContextLogger(), middleware.RequestLogger())

	var sawLogger bool
	e.GET("/ping", func(c echo.Context) error {
		sawLogger = logger.FromContext(c.Request().Context()) != &log.Logger
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, sawLogger)
	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-supplied")
	e.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
