package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/middleware"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/auth"
	ws "github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/websocket"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/response"
)

type WebSocketHandler struct {
	router     *ws.Router
	jwtService *auth.JWTService
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict in production deployments.
	},
}

func NewWebSocketHandler(router *ws.Router, jwtService *auth.JWTService) *WebSocketHandler {
	return &WebSocketHandler{
		router:     router,
		jwtService: jwtService,
	}
}

// HandleWebSocket upgrades the connection and starts the client pumps. The
// session identity is resolved here, before the upgrade, and attached to the
// connection; the realtime auth event can only confirm it.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authorization required", nil))
	}

	claims, err := h.jwtService.VerifyToken(token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(claims.UserID, conn)

	go client.ReadPump(h.router)
	go client.WritePump()

	return nil
}
