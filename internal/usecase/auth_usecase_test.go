package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

type fakeUserRepo struct {
	users map[int64]*entity.User
	next  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), next: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return errors.Conflict("Username already in use")
		}
	}
	user.ID = r.next
	user.CreatedAt = time.Now()
	r.next++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) AcceptTerms(ctx context.Context, id int64) error {
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.AcceptedTerms = true
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateToken(userID int64, username string) (string, error) {
	return "test-token", nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, fakeTokenService{})
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{Username: "annie", Password: "correct horse", AcceptedTerms: true})
	require.NoError(t, err)
	assert.NotZero(t, result.User.ID)
	assert.Equal(t, "test-token", result.Token)
	assert.True(t, result.User.AcceptedTerms)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)

	login, err := uc.Login(ctx, "annie", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, fakeTokenService{})
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{Username: "annie", Password: "correct horse"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{Username: "annie", Password: "other password"})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, fakeTokenService{})
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{Username: "annie", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Login(ctx, "annie", "wrong")
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := uc.Login(ctx, "nobody", "whatever")
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	})
}
