package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	items    map[string]domain.Product
	getErr   error
	decErr   error
	decCalls int
}

func newFakeStore(items ...domain.Product) *fakeStore {
	m := make(map[string]domain.Product)
	for _, p := range items {
		m[p.ProductID] = p
	}
	return &fakeStore{items: m}
}

func (s *fakeStore) Get(_ context.Context, productID string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return domain.Product{}, s.getErr
	}
	p, ok := s.items[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *fakeStore) DecrementStock(_ context.Context, productID string, units int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decCalls++
	if s.decErr != nil {
		return s.decErr
	}
	p, ok := s.items[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Quantity < int64(units) {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= int64(units)
	s.items[productID] = p
	return nil
}

type fakeSender struct {
	mu      sync.Mutex
	sent    [][]byte
	sendErr error
}

func (s *fakeSender) send(payload []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.sent = append(s.sent, payload)
	return "receipt-1", nil
}

func (s *fakeSender) Enqueue(_ context.Context, payload []byte) (string, error) {
	return s.send(payload)
}

func (s *fakeSender) Publish(_ context.Context, payload []byte) (string, error) {
	return s.send(payload)
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []string
}

func (j *fakeJournal) Record(_ context.Context, channel string, _ []byte, sendErr string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, channel+": "+sendErr)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
