package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	apperrors "github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, accepted_terms)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.Username, user.PasswordHash, user.AcceptedTerms,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.Conflict("Username already in use")
		}
		return apperrors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, accepted_terms, created_at
		 FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, accepted_terms, created_at
		 FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return user, nil
}

func (r *postgresUserRepository) AcceptTerms(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET accepted_terms = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperrors.Internal("Failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("User", nil)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.AcceptedTerms, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
