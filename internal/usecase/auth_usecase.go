package usecase

import (
	"context"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/auth"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
	"github.com/anniehongsk/RIT-Marketplace/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	tokenService TokenService
}

func NewAuthUseCase(userRepo repository.UserRepository, tokenService TokenService) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

type RegisterInput struct {
	Username      string
	Password      string
	AcceptedTerms bool
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Username:      input.Username,
		PasswordHash:  hash,
		AcceptedTerms: input.AcceptedTerms,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokenService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, errors.Internal("Failed to generate session token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		logger.Warn("Failed login attempt for user %s", username)
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	token, err := uc.tokenService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, errors.Internal("Failed to generate session token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}
