package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/auth"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/response"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate verifies the bearer token and puts the session identity into
// the request context under "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := TokenFromRequest(c)
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authorization required", nil))
		}

		claims, err := m.jwtService.VerifyToken(token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", claims.UserID)
		c.Set("username", claims.Username)

		return next(c)
	}
}

// TokenFromRequest extracts the session token from the Authorization header
// or, as a fallback for WebSocket upgrades where browsers cannot set headers,
// from the "token" query parameter.
func TokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("token")
}
