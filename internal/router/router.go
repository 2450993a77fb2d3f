package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/handlers"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/middleware"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/service"
)

func SetupCredentialRoutes(e *echo.Echo, credentialHandler *handlers.CredentialHandler) {
	e.POST("/user", credentialHandler.Register) // Registration
	e.POST("/session", credentialHandler.Login) // Login, returns a session token
}

func SetupSessionRoutes(e *echo.Echo, sessionHandler *handlers.SessionHandler, tokens service.TokenGenerator) {
	e.GET("/session", sessionHandler.GetSession, middleware.SessionAuth(tokens)) // Who am I
}
