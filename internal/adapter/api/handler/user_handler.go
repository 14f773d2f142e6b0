package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/usecase"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid user id", err))
	}

	user, err := h.userUseCase.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) AcceptTerms(c echo.Context) error {
	userID := c.Get("uid").(int64)

	if err := h.userUseCase.AcceptTerms(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"acceptedTerms": true})
}
