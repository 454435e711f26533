package integration

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/orderflow/internal/order/domain"
	orderdb "github.com/dmehra2102/orderflow/internal/order/infrastructure/postgres"
)

func TestConditionalDecrementAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Skipf("container environment unavailable: %v", err)
	}
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, orderdb.EnsureSchema(ctx, pool))

	log := slog.New(slog.DiscardHandler)
	store := orderdb.NewItemStore(log, pool)
	require.NoError(t, store.Upsert(ctx, domain.Product{
		ProductID: "P1", Name: "Widget", PriceCents: 1999, Quantity: 25,
	}))

	// concurrent decrements must never overdraw the row
	var ok atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.DecrementStock(ctx, "P1", 1)
			if err == nil {
				ok.Add(1)
			} else if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("unexpected decrement error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(25), ok.Load())
	got, err := store.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)

	err = store.DecrementStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
