package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// Validator checks an incoming order against the item store. It is
// read-only: the stock check here is advisory and the updater re-checks it
// atomically at commit time.
type Validator struct {
	log   *slog.Logger
	store ItemStore
}

func NewValidator(log *slog.Logger, store ItemStore) *Validator {
	return &Validator{log: log, store: store}
}

func (v *Validator) Validate(ctx context.Context, req domain.OrderRequest) (domain.OrderRequest, error) {
	if req.ProductID == "" {
		return req, domain.NewFailure(domain.CodeMissingField, domain.KindInput, "missing product_id in the order request")
	}

	item, err := v.store.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return req, domain.NewFailure(domain.CodeInvalidProduct, domain.KindLookup, "no product record for "+req.ProductID)
		}
		v.log.Error("product lookup failed", "product_id", req.ProductID, "err", err)
		return req, domain.NewFailure(domain.CodeProductLookupError, domain.KindLookup, err.Error())
	}

	units, err := req.Units()
	if err != nil {
		return req, domain.NewFailure(domain.CodeInvalidQuantity, domain.KindInput, "quantity must be a positive integer")
	}

	if item.Quantity < int64(units) {
		return req, domain.NewFailure(domain.CodeOutOfStock, domain.KindStock,
			fmt.Sprintf("product %s is out of stock", req.ProductID))
	}

	req.Quantity = strconv.Itoa(units)
	return req, nil
}
