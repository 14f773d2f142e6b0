package usecase

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// AcceptTerms records the one-time terms acceptance. Accepting again is a
// no-op, not an error.
func (uc *UserUseCase) AcceptTerms(ctx context.Context, userID int64) error {
	return uc.userRepo.AcceptTerms(ctx, userID)
}
