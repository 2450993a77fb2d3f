package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/middleware"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession reports the identity behind the caller's session token. It must
// be mounted behind middleware.SessionAuth.
func (h *SessionHandler) GetSession(c echo.Context) error {
	claims, ok := c.Get(middleware.SessionContextKey).(*models.SessionClaims)
	if !ok || claims == nil {
		log.Error().Interface("actualType", c.Get(middleware.SessionContextKey)).Msg("Session claims missing from context. This indicates a middleware misconfiguration.")
		return echo.NewHTTPError(http.StatusInternalServerError, "Session unavailable")
	}

	resp := models.SessionResponse{Username: claims.Subject}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return c.JSON(http.StatusOK, resp)
}
