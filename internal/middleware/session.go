package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/service"
)

// SessionContextKey is where SessionAuth stores the verified
// *models.SessionClaims.
const SessionContextKey = "user"

// SessionAuth requires a valid Bearer session token issued by tokens.
func SessionAuth(tokens service.TokenGenerator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: SessionContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := tokens.ValidateToken(auth)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session token").SetInternal(err)
		},
	})
}
