package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

func TestValidatorMissingProductID(t *testing.T) {
	v := NewValidator(testLogger(), newFakeStore())
	_, err := v.Validate(context.Background(), domain.OrderRequest{Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeMissingField))
}

func TestValidatorUnknownProduct(t *testing.T) {
	v := NewValidator(testLogger(), newFakeStore())
	_, err := v.Validate(context.Background(), domain.OrderRequest{ProductID: "nope", Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidProduct))
}

func TestValidatorStoreUnreachable(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	v := NewValidator(testLogger(), store)
	_, err := v.Validate(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "1"})
	assert.True(t, domain.IsCode(err, domain.CodeProductLookupError))
}

func TestValidatorRejectsBadQuantities(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Name: "Widget", PriceCents: 1999, Quantity: 10})
	v := NewValidator(testLogger(), store)
	for _, q := range []string{"0", "-1", "1.5", "two", ""} {
		_, err := v.Validate(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: q})
		assert.True(t, domain.IsCode(err, domain.CodeInvalidQuantity), "quantity %q", q)
	}
}

func TestValidatorOutOfStock(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Quantity: 3})
	v := NewValidator(testLogger(), store)
	_, err := v.Validate(context.Background(), domain.OrderRequest{ProductID: "P1", Quantity: "4"})
	assert.True(t, domain.IsCode(err, domain.CodeOutOfStock))
}

func TestValidatorNormalizesAndIsIdempotent(t *testing.T) {
	store := newFakeStore(domain.Product{ProductID: "P1", Quantity: 10})
	v := NewValidator(testLogger(), store)

	req := domain.OrderRequest{ProductID: "P1", Quantity: "05", PaymentStatus: "successful"}
	first, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "5", first.Quantity)

	second, err := v.Validate(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// read-only: repeated validation never touches stock
	got, _ := store.Get(context.Background(), "P1")
	assert.Equal(t, int64(10), got.Quantity)
	assert.Zero(t, store.decCalls)
}
