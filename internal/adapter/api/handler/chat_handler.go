package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/usecase"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/response"
	"github.com/anniehongsk/RIT-Marketplace/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createChatRequest struct {
	ProductID      int64  `json:"productId" validate:"required"`
	InitialMessage string `json:"initialMessage"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// updateChatRequest carries the allowed transitions explicitly; there is no
// free-form patch surface.
type updateChatRequest struct {
	OrderType   *string `json:"orderType" validate:"omitempty,oneof=campus delivery pickup"`
	IsCompleted *bool   `json:"isCompleted"`
}

// CreateChat opens a chat with a listing's seller; repeated calls for the
// same listing return the existing chat.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(int64)

	chat, err := h.chatUseCase.CreateChat(c.Request().Context(), buyerID, usecase.CreateChatInput{
		ProductID:      req.ProductID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(int64)
	pagination := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetChatByID(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	chat, err := h.chatUseCase.GetChatByID(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

// GetChatMessages returns the chat history, ascending by creation time.
func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, chatID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(int64)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), senderID, chatID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// UpdateChat applies order-type selection and/or completion under the same
// rules the realtime path enforces.
func (h *ChatHandler) UpdateChat(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	var orderType *entity.OrderType
	if req.OrderType != nil {
		parsed, ok := entity.ParseOrderType(*req.OrderType)
		if !ok {
			return response.Error(c, errors.BadRequest("Invalid order type", nil))
		}
		orderType = &parsed
	}
	markCompleted := req.IsCompleted != nil && *req.IsCompleted

	actorID := c.Get("uid").(int64)

	chat, err := h.chatUseCase.UpdateChat(c.Request().Context(), actorID, chatID, orderType, markCompleted)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func chatIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Invalid chat id", err)
	}
	return id, nil
}
