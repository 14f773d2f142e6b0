package router

import (
	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/handler"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/middleware"
)

// SetupProductRouter sets up listing routes. Browsing is public; creating a
// listing requires a session.
func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	productGroup := e.Group("/v1/products")

	productGroup.GET("", productHandler.ListProducts)
	productGroup.GET("/:id", productHandler.GetProduct)
	productGroup.POST("", productHandler.CreateProduct, authMiddleware.Authenticate)
}
