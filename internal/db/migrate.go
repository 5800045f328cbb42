package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		img_url TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT true,
		featured BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS cartitems (
		id BIGSERIAL PRIMARY KEY,
		cart_id BIGINT NOT NULL REFERENCES carts(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INT NOT NULL CHECK (quantity >= 1),
		size TEXT NOT NULL DEFAULT 'One Size',
		color TEXT NOT NULL DEFAULT 'Default',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (cart_id, product_id, size, color)
	)`,
}

// Migrate creates the tables if they don't exist yet. The cartitems unique
// key is what makes add-or-merge a single upsert statement.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
