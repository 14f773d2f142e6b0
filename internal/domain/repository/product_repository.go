package repository

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
)

// ProductFilter narrows List results. Zero values mean "no constraint".
type ProductFilter struct {
	Category  string
	Condition string
	Search    string
	MinPrice  int64
	MaxPrice  int64
	SellerID  int64
	// IncludeSold widens the result set to listings already sold.
	IncludeSold bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	// MarkSold flips the one-way isSold flag. Safe to retry.
	MarkSold(ctx context.Context, id int64) error
}
