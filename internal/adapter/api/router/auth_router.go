package router

import (
	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/handler"
)

// SetupAuthRouter sets up registration and login routes (public).
func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler) {
	authGroup := e.Group("/v1/auth")

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
}
