package router

import (
	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/handler"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/middleware"
)

// SetupUserRouter sets up user profile routes.
func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/:id", userHandler.GetUser)
	userGroup.POST("/me/accept-terms", userHandler.AcceptTerms)
}
