package application

import (
	"context"
	"log/slog"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// PaymentGate passes or fails an order on its payment status flag. It does
// no I/O; the flag is supplied by the upstream payment processor.
type PaymentGate struct {
	log *slog.Logger
}

func NewPaymentGate(log *slog.Logger) *PaymentGate {
	return &PaymentGate{log: log}
}

func (g *PaymentGate) Process(_ context.Context, req domain.OrderRequest) (domain.OrderRequest, error) {
	if req.PaymentStatus == "" {
		return req, domain.NewFailure(domain.CodeMissingPaymentStatus, domain.KindPayment, "payment_status is missing in the order request")
	}
	if req.PaymentStatus != domain.PaymentSuccessful {
		return req, domain.NewFailure(domain.CodePaymentFailure, domain.KindPayment, "payment was not successful")
	}
	req.Message = "Payment processed successfully."
	return req, nil
}
