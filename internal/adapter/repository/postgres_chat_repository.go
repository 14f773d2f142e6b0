package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	apperrors "github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

type postgresChatRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresChatRepository(pool *pgxpool.Pool) repository.ChatRepository {
	return &postgresChatRepository{pool: pool}
}

const chatColumns = `id, product_id, buyer_id, seller_id, order_type, is_completed, created_at`

func (r *postgresChatRepository) CreateOrGet(ctx context.Context, chat *entity.Chat) (*entity.Chat, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict,
	// so concurrent creations for the same triple converge on one chat.
	row := r.pool.QueryRow(ctx,
		`INSERT INTO chats (product_id, buyer_id, seller_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (product_id, buyer_id, seller_id)
		 DO UPDATE SET product_id = EXCLUDED.product_id
		 RETURNING `+chatColumns,
		chat.ProductID, chat.BuyerID, chat.SellerID)

	created, err := scanChat(row)
	if err != nil {
		return nil, apperrors.Internal("Failed to create chat", err)
	}
	return created, nil
}

func (r *postgresChatRepository) GetByID(ctx context.Context, id int64) (*entity.Chat, error) {
	chat, err := scanChat(r.pool.QueryRow(ctx,
		`SELECT `+chatColumns+` FROM chats WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Chat", err)
		}
		return nil, apperrors.Internal("Failed to get chat", err)
	}
	return chat, nil
}

func (r *postgresChatRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Chat, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chats WHERE buyer_id = $1 OR seller_id = $1`,
		userID).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count chats", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+chatColumns+` FROM chats
		 WHERE buyer_id = $1 OR seller_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list chats", err)
	}
	defer rows.Close()

	var chats []*entity.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, 0, apperrors.Internal("Failed to scan chat", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal("Failed to list chats", err)
	}

	return chats, total, nil
}

func (r *postgresChatRepository) SetOrderType(ctx context.Context, id int64, orderType entity.OrderType) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chats SET order_type = $2 WHERE id = $1 AND is_completed = FALSE`,
		id, string(orderType))
	if err != nil {
		return apperrors.Internal("Failed to update chat", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.InvalidState("Chat is already completed", nil)
	}
	return nil
}

func (r *postgresChatRepository) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	// Guarded update: a chat already completed is not written again, which
	// keeps the completion cascade single-shot under concurrent requests.
	tag, err := r.pool.Exec(ctx,
		`UPDATE chats SET is_completed = TRUE WHERE id = $1 AND is_completed = FALSE`, id)
	if err != nil {
		return false, apperrors.Internal("Failed to complete chat", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (chat_id, sender_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		message.ChatID, message.SenderID, message.Text,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return apperrors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *postgresChatRepository) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*entity.Message, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE chat_id = $1`, chatID).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count messages", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, sender_id, text, created_at FROM messages
		 WHERE chat_id = $1
		 ORDER BY created_at ASC, id ASC
		 LIMIT $2 OFFSET $3`,
		chatID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list messages", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var message entity.Message
		if err := rows.Scan(&message.ID, &message.ChatID, &message.SenderID, &message.Text, &message.CreatedAt); err != nil {
			return nil, 0, apperrors.Internal("Failed to scan message", err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal("Failed to list messages", err)
	}

	return messages, total, nil
}

func scanChat(row pgx.Row) (*entity.Chat, error) {
	var chat entity.Chat
	var orderType *string
	err := row.Scan(&chat.ID, &chat.ProductID, &chat.BuyerID, &chat.SellerID, &orderType, &chat.IsCompleted, &chat.CreatedAt)
	if err != nil {
		return nil, err
	}
	if orderType != nil {
		ot := entity.OrderType(*orderType)
		chat.OrderType = &ot
	}
	return &chat, nil
}
