package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/pkg/logger"

	apperrors "github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

// ChatService is the state-changing surface the router dispatches inbound
// events to. Fan-out of the resulting events happens behind this interface;
// the router itself only ever answers the originating connection.
type ChatService interface {
	SendMessage(ctx context.Context, senderID, chatID int64, text string) (*entity.Message, error)
	UpdateChat(ctx context.Context, actorID, chatID int64, orderType *entity.OrderType, markCompleted bool) (*entity.Chat, error)
}

// Router is the single authoritative entry point for state-changing realtime
// events. Every failure becomes one error event to the offending connection;
// the connection itself is never terminated by a bad event.
type Router struct {
	registry *Registry
	chats    ChatService
}

func NewRouter(registry *Registry, chats ChatService) *Router {
	return &Router{
		registry: registry,
		chats:    chats,
	}
}

// HandleEvent processes one inbound frame from a client.
func (r *Router) HandleEvent(ctx context.Context, client *Client, payload []byte) {
	var event ClientEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		r.sendError(client, "Invalid event format")
		return
	}

	if event.Type != EventTypeAuth && !client.authenticated {
		r.sendError(client, "Authentication required")
		return
	}

	switch event.Type {
	case EventTypeAuth:
		r.handleAuth(client, event)
	case EventTypeNewMessage:
		r.handleNewMessage(ctx, client, event)
	case EventTypeUpdateChat:
		r.handleUpdateChat(ctx, client, event)
	default:
		r.sendError(client, "Unknown event type")
	}
}

// HandleDisconnect drops the connection from the registry. In-flight events
// for this client are simply no longer deliverable; clients reconcile through
// the REST history endpoints after reconnecting.
func (r *Router) HandleDisconnect(client *Client) {
	if client.authenticated {
		r.registry.Unregister(client)
	}
	client.detach()
}

// handleAuth binds the connection to its identity. The claimed user id must
// match the identity the HTTP session established at upgrade time; the
// client-supplied field alone is never trusted.
func (r *Router) handleAuth(client *Client, event ClientEvent) {
	if event.UserID == 0 {
		r.sendError(client, "Missing userId")
		return
	}
	if event.UserID != client.SessionUserID {
		logger.Warn("Rejected auth for user %d claiming identity %d", client.SessionUserID, event.UserID)
		r.sendError(client, "Claimed identity does not match session")
		return
	}

	if !client.authenticated {
		client.UserID = client.SessionUserID
		client.authenticated = true
		r.registry.Register(client)
	}

	r.reply(client, NewAuthSuccessEvent())
}

func (r *Router) handleNewMessage(ctx context.Context, client *Client, event ClientEvent) {
	if event.ChatID == 0 || event.Text == "" {
		r.sendError(client, "Missing required fields")
		return
	}

	if _, err := r.chats.SendMessage(ctx, client.UserID, event.ChatID, event.Text); err != nil {
		r.sendAppError(client, err)
		return
	}
}

func (r *Router) handleUpdateChat(ctx context.Context, client *Client, event ClientEvent) {
	if event.ChatID == 0 {
		r.sendError(client, "Missing chatId")
		return
	}
	if event.OrderType == nil && event.IsCompleted == nil {
		r.sendError(client, "Nothing to update")
		return
	}

	var orderType *entity.OrderType
	if event.OrderType != nil {
		parsed, ok := entity.ParseOrderType(*event.OrderType)
		if !ok {
			r.sendError(client, "Invalid order type")
			return
		}
		orderType = &parsed
	}

	markCompleted := event.IsCompleted != nil && *event.IsCompleted

	if _, err := r.chats.UpdateChat(ctx, client.UserID, event.ChatID, orderType, markCompleted); err != nil {
		r.sendAppError(client, err)
		return
	}
}

// reply answers the originating connection directly, bypassing the registry:
// it must work even before the connection is registered.
func (r *Router) reply(client *Client, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal reply event: %v", err)
		return
	}
	r.registry.deliver(client, payload)
}

func (r *Router) sendError(client *Client, message string) {
	r.reply(client, NewErrorEvent(message))
}

// sendAppError surfaces an application error to the client, hiding internal
// detail for anything unexpected.
func (r *Router) sendAppError(client *Client, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		r.sendError(client, appErr.Message)
		return
	}
	logger.Error("Unexpected error on realtime event: %v", err)
	r.sendError(client, "An unexpected error occurred")
}
