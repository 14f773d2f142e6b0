package websocket_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/service"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/websocket"
	"github.com/anniehongsk/RIT-Marketplace/internal/usecase"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

// In-memory stores wiring the realtime router to a real chat use case and a
// real registry, so the whole event path runs as deployed.

type memChatRepo struct {
	chats    map[int64]*entity.Chat
	messages map[int64][]*entity.Message
	nextChat int64
	nextMsg  int64
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		chats:    make(map[int64]*entity.Chat),
		messages: make(map[int64][]*entity.Message),
		nextChat: 1,
		nextMsg:  1,
	}
}

func (r *memChatRepo) seed(chat *entity.Chat) {
	r.chats[chat.ID] = chat
	if chat.ID >= r.nextChat {
		r.nextChat = chat.ID + 1
	}
}

func (r *memChatRepo) CreateOrGet(ctx context.Context, chat *entity.Chat) (*entity.Chat, error) {
	for _, existing := range r.chats {
		if existing.ProductID == chat.ProductID && existing.BuyerID == chat.BuyerID && existing.SellerID == chat.SellerID {
			copied := *existing
			return &copied, nil
		}
	}
	created := *chat
	created.ID = r.nextChat
	created.CreatedAt = time.Now()
	r.nextChat++
	r.chats[created.ID] = &created
	copied := created
	return &copied, nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id int64) (*entity.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *memChatRepo) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Chat, int64, error) {
	var result []*entity.Chat
	for _, chat := range r.chats {
		if chat.BuyerID == userID || chat.SellerID == userID {
			copied := *chat
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memChatRepo) SetOrderType(ctx context.Context, id int64, orderType entity.OrderType) error {
	chat, ok := r.chats[id]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	if chat.IsCompleted {
		return errors.InvalidState("Chat is already completed", nil)
	}
	chat.OrderType = &orderType
	return nil
}

func (r *memChatRepo) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	chat, ok := r.chats[id]
	if !ok {
		return false, errors.NotFound("Chat", nil)
	}
	if chat.IsCompleted {
		return false, nil
	}
	chat.IsCompleted = true
	return true, nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	message.ID = r.nextMsg
	message.CreatedAt = time.Now()
	r.nextMsg++
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*entity.Message, int64, error) {
	msgs := r.messages[chatID]
	return msgs, int64(len(msgs)), nil
}

type memProductRepo struct {
	products map[int64]*entity.Product
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (r *memProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *memProductRepo) MarkSold(ctx context.Context, id int64) error {
	product, ok := r.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.IsSold = true
	return nil
}

func drain(t *testing.T, client *websocket.Client) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for {
		select {
		case payload := <-client.Send:
			var event map[string]interface{}
			require.NoError(t, json.Unmarshal(payload, &event))
			events = append(events, event)
		default:
			return events
		}
	}
}

func eventTypes(events []map[string]interface{}) []string {
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event["type"].(string))
	}
	return types
}

// The full negotiation flow over the realtime path: buyer asks about a
// listing, seller replies and completes the sale, the listing is marked sold
// and broadcast, and the closed chat rejects further writes.
func TestNegotiationFlow(t *testing.T) {
	ctx := context.Background()

	chatRepo := newMemChatRepo()
	products := &memProductRepo{products: map[int64]*entity.Product{
		10: {ID: 10, SellerID: 1, Title: "Mini fridge", AllowDelivery: true},
	}}
	chatRepo.seed(&entity.Chat{ID: 5, ProductID: 10, BuyerID: 2, SellerID: 1})

	registry := websocket.NewRegistry()
	chatUC := usecase.NewChatUseCase(chatRepo, products, service.NewChatTransaction(service.DefaultPolicy()), registry)
	router := websocket.NewRouter(registry, chatUC)

	seller := websocket.NewClient(1, nil)
	buyerTab1 := websocket.NewClient(2, nil)
	buyerTab2 := websocket.NewClient(2, nil)

	for _, c := range []*websocket.Client{seller, buyerTab1, buyerTab2} {
		auth, _ := json.Marshal(map[string]interface{}{"type": "auth", "userId": c.SessionUserID})
		router.HandleEvent(ctx, c, auth)
		events := drain(t, c)
		require.Equal(t, []string{"auth_success"}, eventTypes(events))
	}

	// Buyer asks about the listing.
	router.HandleEvent(ctx, buyerTab1, []byte(`{"type":"new_message","chatId":5,"text":"Is this available?"}`))

	sellerEvents := drain(t, seller)
	require.Equal(t, []string{"message"}, eventTypes(sellerEvents))
	message := sellerEvents[0]["message"].(map[string]interface{})
	assert.Equal(t, float64(2), message["senderId"])
	assert.Equal(t, "Is this available?", message["text"])

	// Every buyer connection gets the confirmation copy.
	assert.Equal(t, []string{"message"}, eventTypes(drain(t, buyerTab1)))
	assert.Equal(t, []string{"message"}, eventTypes(drain(t, buyerTab2)))

	// Seller replies, picks delivery, and completes, in order on one
	// connection.
	router.HandleEvent(ctx, seller, []byte(`{"type":"new_message","chatId":5,"text":"Yes, yours for $40"}`))
	router.HandleEvent(ctx, seller, []byte(`{"type":"update_chat","chatId":5,"orderType":"delivery","isCompleted":true}`))

	buyerEvents := drain(t, buyerTab1)
	require.Equal(t, []string{"message", "product_sold", "chat_update"}, eventTypes(buyerEvents))
	assert.Equal(t, float64(10), buyerEvents[1]["productId"])
	chat := buyerEvents[2]["chat"].(map[string]interface{})
	assert.Equal(t, "delivery", chat["orderType"])
	assert.Equal(t, true, chat["isCompleted"])

	// The broadcast reaches the seller too.
	assert.Contains(t, eventTypes(drain(t, seller)), "product_sold")

	product, err := products.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.True(t, product.IsSold)

	messages, total, err := chatRepo.ListMessages(ctx, 5, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Is this available?", messages[0].Text)
	assert.Equal(t, "Yes, yours for $40", messages[1].Text)

	// The completed chat rejects further writes from either side.
	router.HandleEvent(ctx, buyerTab1, []byte(`{"type":"new_message","chatId":5,"text":"wait"}`))
	rejected := drain(t, buyerTab1)
	require.Equal(t, []string{"error"}, eventTypes(rejected))
	assert.Equal(t, "Chat is already completed", rejected[0]["message"])

	router.HandleEvent(ctx, seller, []byte(`{"type":"update_chat","chatId":5,"isCompleted":true}`))
	assert.Equal(t, []string{"error"}, eventTypes(drain(t, seller)))

	_, total, err = chatRepo.ListMessages(ctx, 5, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
