package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

type ItemStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewItemStore(log *slog.Logger, pool *pgxpool.Pool) *ItemStore {
	return &ItemStore{log: log, pool: pool}
}

// EnsureSchema creates the tables this service owns.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS products (
		product_id  TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		price_cents BIGINT NOT NULL DEFAULT 0 CHECK (price_cents >= 0),
		quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0)
	)`)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS delivery_journal (
		id          BIGSERIAL PRIMARY KEY,
		channel     TEXT NOT NULL,
		payload     BYTEA NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending',
		last_error  TEXT,
		retry_count INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (s *ItemStore) Get(ctx context.Context, productID string) (domain.Product, error) {
	var p domain.Product
	err := s.pool.QueryRow(ctx,
		`SELECT product_id, name, price_cents, quantity FROM products WHERE product_id=$1`, productID).
		Scan(&p.ProductID, &p.Name, &p.PriceCents, &p.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ItemStore) Upsert(ctx context.Context, p domain.Product) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO products (product_id, name, price_cents, quantity)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (product_id) DO UPDATE SET name=$2, price_cents=$3, quantity=$4`,
		p.ProductID, p.Name, p.PriceCents, p.Quantity)
	return err
}

// DecrementStock applies the decrement in one conditional statement: the
// WHERE clause re-checks the stock at commit time, so concurrent decrements
// against the same product serialize on the row and can never overdraw it.
func (s *ItemStore) DecrementStock(ctx context.Context, productID string, units int) error {
	ct, err := s.pool.Exec(ctx,
		`UPDATE products SET quantity = quantity - $2 WHERE product_id=$1 AND quantity >= $2`,
		productID, units)
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	return domain.ErrInsufficientStock
}
