package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	username       TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	accepted_terms BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id                  BIGSERIAL PRIMARY KEY,
	seller_id           BIGINT NOT NULL REFERENCES users(id),
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	price               BIGINT NOT NULL,
	condition           TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL DEFAULT '',
	location            TEXT NOT NULL DEFAULT '',
	images              TEXT[] NOT NULL DEFAULT '{}',
	is_sold             BOOLEAN NOT NULL DEFAULT FALSE,
	allow_campus_meetup BOOLEAN NOT NULL DEFAULT FALSE,
	allow_delivery      BOOLEAN NOT NULL DEFAULT FALSE,
	allow_pickup        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS chats (
	id           BIGSERIAL PRIMARY KEY,
	product_id   BIGINT NOT NULL REFERENCES products(id),
	buyer_id     BIGINT NOT NULL REFERENCES users(id),
	seller_id    BIGINT NOT NULL REFERENCES users(id),
	order_type   TEXT,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (product_id, buyer_id, seller_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id         BIGSERIAL PRIMARY KEY,
	chat_id    BIGINT NOT NULL REFERENCES chats(id),
	sender_id  BIGINT NOT NULL REFERENCES users(id),
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_chat_created ON messages (chat_id, created_at);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
`

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
