package usecase

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/service"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/ratelimit"
	ws "github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/websocket"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/logger"
)

// ChatUseCase owns the per-listing negotiation threads: idempotent creation,
// message creation, and the order-type/completion transitions. All realtime
// fan-out goes through the notifier so callers on the REST path and the
// WebSocket path observe identical behavior.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	productRepo repository.ProductRepository
	transaction *service.ChatTransaction
	notifier    ws.Notifier
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	productRepo repository.ProductRepository,
	transaction *service.ChatTransaction,
	notifier ws.Notifier,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		productRepo: productRepo,
		transaction: transaction,
		notifier:    notifier,
		rateLimiter: rateLimiter,
	}
}

type CreateChatInput struct {
	ProductID      int64
	InitialMessage string
}

type ChatResponse struct {
	*entity.Chat
	Product *entity.Product `json:"product,omitempty"`
}

// CreateChat opens (or returns) the negotiation thread between the caller and
// the product's seller. Creation is idempotent on (product, buyer, seller).
func (uc *ChatUseCase) CreateChat(ctx context.Context, buyerID int64, input CreateChatInput) (*ChatResponse, error) {
	allowed, _ := uc.rateLimiter.Allow(buyerID, "create_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Too many chats created, please wait before starting another")
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot start a chat about your own listing", nil)
	}

	chat, err := uc.chatRepo.CreateOrGet(ctx, &entity.Chat{
		ProductID: product.ID,
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
	})
	if err != nil {
		return nil, err
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, buyerID, chat.ID, input.InitialMessage); err != nil {
			return nil, err
		}
	}

	return &ChatResponse{Chat: chat, Product: product}, nil
}

func (uc *ChatUseCase) GetChatByID(ctx context.Context, userID, chatID int64) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.RoleOf(userID) == entity.RoleNone {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID int64, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

// ListMessages returns the chat history ordered ascending by creation time,
// the reconciliation source of truth for reconnecting clients.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID int64, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if chat.RoleOf(userID) == entity.RoleNone {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

// SendMessage persists a message and fans it out to every live connection of
// both participants. The copy to the sender's own connections keeps
// additional tabs in sync. A failed persistence never fans out.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID int64, text string) (*entity.Message, error) {
	if text == "" {
		return nil, errors.BadRequest("Message text cannot be empty", nil)
	}

	allowed, _ := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("Too many messages, please slow down")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := uc.transaction.CanSendMessage(chat, senderID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	event := ws.NewMessageEvent(message)
	uc.notifier.SendToUser(chat.OtherParticipant(senderID), event)
	uc.notifier.SendToUser(senderID, event)

	return message, nil
}

// UpdateChat applies the requested transitions: order-type selection,
// completion, or both in a single request. Completion cascades into marking
// the product sold and a public product_sold broadcast, at most once per
// chat.
func (uc *ChatUseCase) UpdateChat(ctx context.Context, actorID, chatID int64, orderType *entity.OrderType, markCompleted bool) (*entity.Chat, error) {
	if orderType == nil && !markCompleted {
		return nil, errors.BadRequest("Nothing to update", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if orderType != nil {
		product, err := uc.productRepo.GetByID(ctx, chat.ProductID)
		if err != nil {
			return nil, err
		}
		if err := uc.transaction.SelectOrderType(chat, product, actorID, *orderType); err != nil {
			return nil, err
		}
		if err := uc.chatRepo.SetOrderType(ctx, chatID, *orderType); err != nil {
			return nil, err
		}
		chat.OrderType = orderType
	}

	if markCompleted {
		if err := uc.transaction.Complete(chat, actorID); err != nil {
			return nil, err
		}
		applied, err := uc.chatRepo.MarkCompleted(ctx, chatID)
		if err != nil {
			return nil, err
		}
		if !applied {
			// Lost the race with a concurrent completion.
			return nil, errors.InvalidState("Chat is already completed", nil)
		}
		chat.IsCompleted = true

		// The two flags are independent monotonic writes: a failure here
		// leaves the chat completed and the product retryable, never a
		// rollback.
		if err := uc.productRepo.MarkSold(ctx, chat.ProductID); err != nil {
			logger.Error("Chat %d completed but product %d not marked sold: %v", chatID, chat.ProductID, err)
			return nil, err
		}

		uc.notifier.BroadcastAll(ws.NewProductSoldEvent(chat.ProductID))
	}

	event := ws.NewChatUpdateEvent(chat)
	uc.notifier.SendToUser(chat.OtherParticipant(actorID), event)
	uc.notifier.SendToUser(actorID, event)

	return chat, nil
}
