package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// InventoryUpdater performs the one state mutation in the system: a single
// conditional decrement of product stock. Concurrent updates against the
// same product are serialized by the store's conditional write, not by any
// in-process lock; executions may run on separate machines.
type InventoryUpdater struct {
	log   *slog.Logger
	store ItemStore
}

func NewInventoryUpdater(log *slog.Logger, store ItemStore) *InventoryUpdater {
	return &InventoryUpdater{log: log, store: store}
}

func (u *InventoryUpdater) Update(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	units, err := req.Units()
	if req.ProductID == "" || err != nil {
		return domain.OrderResult{}, domain.NewFailure(domain.CodeInvalidInput, domain.KindInput, "valid product_id and quantity are required")
	}

	item, err := u.store.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.OrderResult{}, domain.NewFailure(domain.CodeInvalidProduct, domain.KindLookup, "no product record for "+req.ProductID)
		}
		u.log.Error("product lookup failed", "product_id", req.ProductID, "err", err)
		return domain.OrderResult{}, domain.NewFailure(domain.CodeProductLookupError, domain.KindLookup, err.Error())
	}

	total := item.PriceCents * int64(units)

	if err := u.store.DecrementStock(ctx, req.ProductID, units); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return domain.OrderResult{}, domain.NewFailure(domain.CodeInsufficientStock, domain.KindStock,
				fmt.Sprintf("not enough quantity available for %s", req.ProductID))
		}
		u.log.Error("stock decrement failed", "product_id", req.ProductID, "err", err)
		return domain.OrderResult{}, domain.NewFailure(domain.CodeUpdateError, domain.KindLookup, err.Error())
	}

	u.log.Info("stock decremented", "product_id", req.ProductID, "units", units)
	return domain.OrderResult{
		ProductName: item.Name,
		Quantity:    units,
		TotalPrice:  domain.FormatPrice(total),
	}, nil
}
