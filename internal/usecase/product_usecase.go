package usecase

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type CreateProductInput struct {
	Title             string
	Description       string
	Price             int64
	Condition         string
	Category          string
	Location          string
	Images            []string
	AllowCampusMeetup bool
	AllowDelivery     bool
	AllowPickup       bool
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID int64, input CreateProductInput) (*entity.Product, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}
	if !seller.AcceptedTerms {
		return nil, errors.Forbidden("You must accept the terms of service before listing items", nil)
	}

	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	// A listing with no delivery method can never reach a transaction.
	if !input.AllowCampusMeetup && !input.AllowDelivery && !input.AllowPickup {
		return nil, errors.BadRequest("At least one delivery method must be enabled", nil)
	}

	product := &entity.Product{
		SellerID:          sellerID,
		Title:             input.Title,
		Description:       input.Description,
		Price:             input.Price,
		Condition:         input.Condition,
		Category:          input.Category,
		Location:          input.Location,
		Images:            input.Images,
		AllowCampusMeetup: input.AllowCampusMeetup,
		AllowDelivery:     input.AllowDelivery,
		AllowPickup:       input.AllowPickup,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, filter, limit, offset)
}
