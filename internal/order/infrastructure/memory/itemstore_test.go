package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

func TestGetUnknown(t *testing.T) {
	s := NewItemStore()
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDecrementStopsAtZero(t *testing.T) {
	s := NewItemStore()
	s.Put(domain.Product{ProductID: "p1", Quantity: 5})
	if err := s.DecrementStock(context.Background(), "p1", 5); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := s.DecrementStock(context.Background(), "p1", 1); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	got, _ := s.Get(context.Background(), "p1")
	if got.Quantity != 0 {
		t.Fatalf("expected 0, got %d", got.Quantity)
	}
}

func TestConcurrentDecrements(t *testing.T) {
	const stock = 30
	const callers = 100
	s := NewItemStore()
	s.Put(domain.Product{ProductID: "p1", Quantity: stock})

	var ok atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.DecrementStock(context.Background(), "p1", 1); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != stock {
		t.Fatalf("expected exactly %d successful decrements, got %d", stock, ok.Load())
	}
	got, _ := s.Get(context.Background(), "p1")
	if got.Quantity != 0 {
		t.Fatalf("expected 0 remaining, got %d", got.Quantity)
	}
}

func TestConcurrentBatchDecrements(t *testing.T) {
	const stock = 17
	const units = 5
	s := NewItemStore()
	s.Put(domain.Product{ProductID: "p1", Quantity: stock})

	var ok atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.DecrementStock(context.Background(), "p1", units); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	// floor(17/5) uniform requests can be served; stock never goes negative
	if ok.Load() != stock/units {
		t.Fatalf("expected %d successes, got %d", stock/units, ok.Load())
	}
	got, _ := s.Get(context.Background(), "p1")
	if got.Quantity != stock%units {
		t.Fatalf("expected %d remaining, got %d", stock%units, got.Quantity)
	}
}
