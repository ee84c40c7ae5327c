package db

import (
	"context"
	"fmt"

	"fern-and-paper/logger"
)

// Migrate creates the schema when missing. Nested catalog and order state
// (variations, personalizations, reviews, line items, addresses) lives in
// jsonb columns so the stored shape matches the API shape.
func Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			sub_category TEXT NOT NULL DEFAULT '',
			tags JSONB NOT NULL DEFAULT '[]',
			images JSONB NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			count_in_stock INTEGER NOT NULL DEFAULT 0,
			variations JSONB NOT NULL DEFAULT '[]',
			personalizations JSONB NOT NULL DEFAULT '[]',
			reviews JSONB NOT NULL DEFAULT '[]',
			rating NUMERIC(4,2) NOT NULL DEFAULT 0,
			num_reviews INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			order_items JSONB NOT NULL DEFAULT '[]',
			shipping_address JSONB NOT NULL DEFAULT '{}',
			payment_method TEXT NOT NULL DEFAULT '',
			payment_result JSONB,
			items_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			shipping_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			tax_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TIMESTAMPTZ,
			is_dispatched BOOLEAN NOT NULL DEFAULT FALSE,
			dispatched_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error running migration: %w", err)
		}
	}

	logger.L.Infof("✓ Database schema is up to date")
	return nil
}
