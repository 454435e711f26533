package application

import (
	"context"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// ItemStore is the product record store. DecrementStock must apply the
// store's native conditional write: the decrement commits only if the stock
// still covers the requested units at commit time.
type ItemStore interface {
	Get(ctx context.Context, productID string) (domain.Product, error)
	DecrementStock(ctx context.Context, productID string, units int) error
}

// QueueWriter enqueues one order message for asynchronous processing.
type QueueWriter interface {
	Enqueue(ctx context.Context, payload []byte) (receipt string, err error)
}

// AlertPublisher publishes one message to the alert topic.
type AlertPublisher interface {
	Publish(ctx context.Context, payload []byte) (receipt string, err error)
}

// DeliveryJournal records a failed send so a relay can re-dispatch it later.
type DeliveryJournal interface {
	Record(ctx context.Context, channel string, payload []byte, sendErr string) error
}

// Orchestrator starts one workflow execution per order request.
type Orchestrator interface {
	StartExecution(ctx context.Context, req domain.OrderRequest) (executionID string, err error)
}
