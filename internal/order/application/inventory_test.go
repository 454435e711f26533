package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

func TestUpdaterInvalidInput(t *testing.T) {
	u := NewInventoryUpdater(testLogger(), newFakeStore())
	for _, req := range []domain.OrderRequest{
		{Quantity: "2"},
		{ProductID: "P1", Quantity: "0"},
		{ProductID: "P1", Quantity: "nope"},
	} {
		_, err := u.Update(context.Background(), req)
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput), "%+v", req)
	}
}

func TestUpdaterUnknownProduct(t *testing.T) {
	u := NewInventoryUpdater(testLogger(), newFakeStore())
	_, err := u.Update(context.Background(), domain.OrderRequest{ProductID: "ghost", Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidProduct))
}

func TestUpdaterStoreReadFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("timeout")
	u := NewInventoryUpdater(testLogger(), store)
	_, err := u.Update(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeProductLookupError))
}

func TestUpdaterExactTotalPrice(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Name: "Widget", PriceCents: 1999, Quantity: 10})
	u := NewInventoryUpdater(testLogger(), store)
	res, err := u.Update(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "3"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderResult{ProductName: "Widget", Quantity: 3, TotalPrice: "59.97"}, res)
}

func TestUpdaterDrainsStockThenRefuses(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Name: "Widget", PriceCents: 100, Quantity: 5})
	u := NewInventoryUpdater(testLogger(), store)

	_, err := u.Update(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "5"})
	require.NoError(t, err)
	got, _ := store.Get(context.Background(), "P1")
	assert.Equal(t, int64(0), got.Quantity)

	_, err = u.Update(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "5"})
	assert.True(t, domain.IsCode(err, domain.CodeInsufficientStock))
}

func TestUpdaterWrapsStoreWriteFailure(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Quantity: 5})
	store.decErr = errors.New("write conflict")
	u := NewInventoryUpdater(testLogger(), store)
	_, err := u.Update(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeUpdateError))
	assert.Contains(t, err.Error(), "write conflict")
}
