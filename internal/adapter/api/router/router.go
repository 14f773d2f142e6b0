package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/handler"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/middleware"
)

// Setup registers every route group on the echo instance.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WebSocketHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	SetupAuthRouter(e, authHandler)
	SetupUserRouter(e, userHandler, authMiddleware)
	SetupProductRouter(e, productHandler, authMiddleware)
	SetupChatRouter(e, chatHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
