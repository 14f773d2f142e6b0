package repository

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
)

type ChatRepository interface {
	// CreateOrGet is idempotent on (productID, buyerID, sellerID): it returns
	// the existing chat when one is already present, never a duplicate.
	CreateOrGet(ctx context.Context, chat *entity.Chat) (*entity.Chat, error)
	GetByID(ctx context.Context, id int64) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Chat, int64, error)
	SetOrderType(ctx context.Context, id int64, orderType entity.OrderType) error
	// MarkCompleted flips the terminal isCompleted flag. The returned bool is
	// false when the chat was already completed, so callers can fire
	// completion side effects exactly once.
	MarkCompleted(ctx context.Context, id int64) (bool, error)

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*entity.Message, int64, error)
}
