package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

const (
	ChannelQueue = "queue"
	ChannelAlert = "alert"
)

// Fanout routes an order event to its downstream channels. Each branch's
// outcome lands in the result map under its own key; one branch failing
// never stops another, and a failed send is journaled for redelivery when a
// journal is configured.
type Fanout struct {
	log     *slog.Logger
	queue   QueueWriter
	alerts  AlertPublisher
	journal DeliveryJournal
}

func NewFanout(log *slog.Logger, queue QueueWriter, alerts AlertPublisher, journal DeliveryJournal) *Fanout {
	return &Fanout{log: log, queue: queue, alerts: alerts, journal: journal}
}

// Dispatch fans one event out by type: order placements go to the order
// queue, critical events to the alert topic, anything else is a no-op.
func (f *Fanout) Dispatch(ctx context.Context, event domain.EventType, message map[string]string) map[string]string {
	result := map[string]string{}
	payload, err := json.Marshal(message)
	if err != nil {
		result["error"] = err.Error()
		return result
	}

	if event == domain.EventOrderPlacement {
		if receipt, err := f.queue.Enqueue(ctx, payload); err != nil {
			f.deliveryFailed(ctx, ChannelQueue, payload, err)
			result["queue_error"] = err.Error()
		} else {
			result["queue_receipt"] = receipt
		}
	}

	if event == domain.EventPaymentFailure || event == domain.EventOutOfStock {
		if receipt, err := f.alerts.Publish(ctx, payload); err != nil {
			f.deliveryFailed(ctx, ChannelAlert, payload, err)
			result["alert_error"] = err.Error()
		} else {
			result["alert_receipt"] = receipt
		}
	}

	return result
}

// Alert publishes a failure payload to the alert topic regardless of event
// type. Used by the workflow's failed terminal state.
func (f *Fanout) Alert(ctx context.Context, message map[string]string) map[string]string {
	result := map[string]string{}
	payload, err := json.Marshal(message)
	if err != nil {
		result["error"] = err.Error()
		return result
	}
	if receipt, err := f.alerts.Publish(ctx, payload); err != nil {
		f.deliveryFailed(ctx, ChannelAlert, payload, err)
		result["alert_error"] = err.Error()
	} else {
		result["alert_receipt"] = receipt
	}
	return result
}

// Confirm emits the order confirmation for a completed execution. Delivery
// here is a log line standing in for the confirmation email.
func (f *Fanout) Confirm(_ context.Context, res domain.OrderResult) {
	msg := fmt.Sprintf("Your order has been confirmed. Product Name: %s, Quantity: %d, Total Price: %s",
		res.ProductName, res.Quantity, res.TotalPrice)
	f.log.Info("order confirmation sent", "message", msg)
}

func (f *Fanout) deliveryFailed(ctx context.Context, channel string, payload []byte, sendErr error) {
	f.log.Error("delivery failed", "channel", channel, "err", sendErr)
	if f.journal == nil {
		return
	}
	if err := f.journal.Record(ctx, channel, payload, sendErr.Error()); err != nil {
		f.log.Error("journal record failed", "channel", channel, "err", err)
	}
}
