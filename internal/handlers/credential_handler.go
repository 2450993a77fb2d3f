package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/logger"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/service"
)

// CredentialHandler handles registration and login requests
type CredentialHandler struct {
	AuthService service.CredentialAuthenticator
}

// NewCredentialHandler creates a new CredentialHandler
func NewCredentialHandler(authService service.CredentialAuthenticator) *CredentialHandler {
	return &CredentialHandler{AuthService: authService}
}

// Register handles POST /user
func (h *CredentialHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	if err := h.AuthService.Register(c.Request().Context(), req); err != nil {
		return h.toHTTPError(c, err, "Registration failed")
	}
	return c.NoContent(http.StatusCreated)
}

// Login handles POST /session
func (h *CredentialHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	resp, err := h.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		return h.toHTTPError(c, err, "Login failed")
	}
	return c.JSON(http.StatusOK, resp)
}

// bindCredentials accepts both {"username","password"} and the enveloped
// {"type":"Post","body":{...}} form. The body is decoded as JSON whatever
// the Content-Type header says.
func bindCredentials(c echo.Context) (models.CredentialsRequest, error) {
	req := new(models.EndpointRequest)
	if err := c.Echo().JSONSerializer.Deserialize(c, req); err != nil {
		return models.CredentialsRequest{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if req.Type != "" && req.Type != models.EnvelopeTypePost {
		return models.CredentialsRequest{}, echo.NewHTTPError(http.StatusBadRequest, "Unsupported request type")
	}
	if req.Type == models.EnvelopeTypePost && req.Body == nil {
		return models.CredentialsRequest{}, echo.NewHTTPError(http.StatusBadRequest, "Request body is missing")
	}
	return req.Credentials(), nil
}

func (h *CredentialHandler) toHTTPError(c echo.Context, err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid username or password format").SetInternal(err)
	case errors.Is(err, service.ErrUsernameUnavailable):
		return echo.NewHTTPError(http.StatusConflict, "Chosen username is unavailable")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, service.ErrUnknownUser):
		return echo.NewHTTPError(http.StatusNotFound, "User does not exist")
	case errors.Is(err, service.ErrTemporarilyUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable, please retry").SetInternal(err)
	default:
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg(fallback)
		return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
	}
}
