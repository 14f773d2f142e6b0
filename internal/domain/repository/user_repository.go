package repository

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	AcceptTerms(ctx context.Context, id int64) error
}
