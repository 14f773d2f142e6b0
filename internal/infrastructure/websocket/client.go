package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/anniehongsk/RIT-Marketplace/pkg/logger"
)

// Client represents a single WebSocket connection.
type Client struct {
	// SessionUserID is the identity established by the HTTP session when the
	// connection was accepted. The auth event must claim this same identity.
	SessionUserID int64
	// UserID is the bound identity, valid only once authenticated is true.
	UserID        int64
	authenticated bool

	Conn *websocket.Conn
	Send chan []byte

	done     chan struct{}
	doneOnce sync.Once
}

func NewClient(sessionUserID int64, conn *websocket.Conn) *Client {
	return &Client{
		SessionUserID: sessionUserID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		done:          make(chan struct{}),
	}
}

// detach stops the write pump. Safe to call more than once.
func (c *Client) detach() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump reads frames from the connection and hands each one to the router.
// Events are processed to completion one at a time, which preserves
// per-connection ordering.
func (c *Client) ReadPump(router *Router) {
	defer func() {
		router.HandleDisconnect(c)
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error: %v", err)
			}
			break
		}

		router.HandleEvent(context.Background(), c, payload)
	}
}

// WritePump sends queued events to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		select {
		case payload := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("WebSocket write error: %v", err)
				return
			}
		case <-c.done:
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
