package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// ItemStore is an in-memory product store for local runs and tests. The
// check and the decrement happen under one lock, matching the commit-time
// guarantee of the durable store.
type ItemStore struct {
	mu sync.RWMutex
	m  map[string]domain.Product
}

func NewItemStore() *ItemStore {
	return &ItemStore{m: make(map[string]domain.Product)}
}

func (s *ItemStore) Put(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ProductID] = p
}

func (s *ItemStore) Get(_ context.Context, productID string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *ItemStore) DecrementStock(_ context.Context, productID string, units int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Quantity < int64(units) {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= int64(units)
	s.m[productID] = p
	return nil
}
