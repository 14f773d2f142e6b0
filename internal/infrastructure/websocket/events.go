package websocket

import (
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
)

// Client -> server event types
const (
	EventTypeAuth       = "auth"
	EventTypeNewMessage = "new_message"
	EventTypeUpdateChat = "update_chat"
)

// Server -> client event types
const (
	EventTypeAuthSuccess = "auth_success"
	EventTypeMessage     = "message"
	EventTypeChatUpdate  = "chat_update"
	EventTypeProductSold = "product_sold"
	EventTypeError       = "error"
)

// ClientEvent is the decoded form of every inbound frame. Fields beyond Type
// are meaningful only for the matching event type.
type ClientEvent struct {
	Type        string  `json:"type"`
	UserID      int64   `json:"userId,omitempty"`
	ChatID      int64   `json:"chatId,omitempty"`
	Text        string  `json:"text,omitempty"`
	OrderType   *string `json:"orderType,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

type AuthSuccessEvent struct {
	Type string `json:"type"`
}

func NewAuthSuccessEvent() AuthSuccessEvent {
	return AuthSuccessEvent{Type: EventTypeAuthSuccess}
}

type MessageEvent struct {
	Type    string          `json:"type"`
	ChatID  int64           `json:"chatId"`
	Message *entity.Message `json:"message"`
}

func NewMessageEvent(message *entity.Message) MessageEvent {
	return MessageEvent{Type: EventTypeMessage, ChatID: message.ChatID, Message: message}
}

type ChatUpdateEvent struct {
	Type string       `json:"type"`
	Chat *entity.Chat `json:"chat"`
}

func NewChatUpdateEvent(chat *entity.Chat) ChatUpdateEvent {
	return ChatUpdateEvent{Type: EventTypeChatUpdate, Chat: chat}
}

type ProductSoldEvent struct {
	Type      string `json:"type"`
	ProductID int64  `json:"productId"`
}

func NewProductSoldEvent(productID int64) ProductSoldEvent {
	return ProductSoldEvent{Type: EventTypeProductSold, ProductID: productID}
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, Message: message}
}
