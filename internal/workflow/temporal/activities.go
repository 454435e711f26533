package temporal

import (
	"context"

	"github.com/dmehra2102/orderflow/internal/order/application"
	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// Activities adapts the order handlers to Temporal activity methods. Each
// method is one workflow step; registration uses the method names.
type Activities struct {
	validator *application.Validator
	gate      *application.PaymentGate
	updater   *application.InventoryUpdater
	fanout    *application.Fanout
}

func NewActivities(validator *application.Validator, gate *application.PaymentGate,
	updater *application.InventoryUpdater, fanout *application.Fanout) *Activities {
	return &Activities{validator: validator, gate: gate, updater: updater, fanout: fanout}
}

func (a *Activities) Validate(ctx context.Context, req domain.OrderRequest) (domain.OrderRequest, error) {
	return a.validator.Validate(ctx, req)
}

func (a *Activities) ProcessPayment(ctx context.Context, req domain.OrderRequest) (domain.OrderRequest, error) {
	return a.gate.Process(ctx, req)
}

func (a *Activities) UpdateInventory(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	return a.updater.Update(ctx, req)
}

func (a *Activities) Notify(ctx context.Context, res domain.OrderResult) error {
	a.fanout.Confirm(ctx, res)
	return nil
}

func (a *Activities) AlertFailure(ctx context.Context, req domain.OrderRequest, reason string) error {
	a.fanout.Alert(ctx, map[string]string{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
		"error":      reason,
	})
	return nil
}
