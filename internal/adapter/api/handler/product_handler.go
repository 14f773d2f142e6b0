package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	"github.com/anniehongsk/RIT-Marketplace/internal/usecase"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/response"
	"github.com/anniehongsk/RIT-Marketplace/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type createProductRequest struct {
	Title             string   `json:"title" validate:"required,max=120"`
	Description       string   `json:"description" validate:"max=5000"`
	Price             int64    `json:"price" validate:"min=0"`
	Condition         string   `json:"condition" validate:"omitempty,oneof=new like_new good fair poor"`
	Category          string   `json:"category"`
	Location          string   `json:"location"`
	Images            []string `json:"images" validate:"omitempty,dive,url"`
	AllowCampusMeetup bool     `json:"allowCampusMeetup"`
	AllowDelivery     bool     `json:"allowDelivery"`
	AllowPickup       bool     `json:"allowPickup"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(int64)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), sellerID, usecase.CreateProductInput{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Condition:         req.Condition,
		Category:          req.Category,
		Location:          req.Location,
		Images:            req.Images,
		AllowCampusMeetup: req.AllowCampusMeetup,
		AllowDelivery:     req.AllowDelivery,
		AllowPickup:       req.AllowPickup,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product id", err))
	}

	product, err := h.productUseCase.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := repository.ProductFilter{
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		Search:    c.QueryParam("search"),
	}
	if minPrice, err := strconv.ParseInt(c.QueryParam("minPrice"), 10, 64); err == nil {
		filter.MinPrice = minPrice
	}
	if maxPrice, err := strconv.ParseInt(c.QueryParam("maxPrice"), 10, 64); err == nil {
		filter.MaxPrice = maxPrice
	}
	if c.QueryParam("includeSold") == "true" {
		filter.IncludeSold = true
	}

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}
