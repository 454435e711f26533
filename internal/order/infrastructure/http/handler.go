package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/orderflow/internal/order/application"
	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// Handler is the order intake boundary. It derives the event type and order
// fields from query-style parameters, merges every parameter into the
// outbound message, and hands the result to the fan-out. Parsing problems
// come back as a client-visible error body, never as a dropped request.
type Handler struct {
	log    *slog.Logger
	fanout *application.Fanout
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger, fanout *application.Fanout) *Handler {
	return &Handler{
		log:    log,
		fanout: fanout,
		tracer: otel.Tracer("order-intake"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/orders", h.placeOrder)
	r.Post("/orders", h.placeOrder)
	return r
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	params, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		h.log.Error("intake parse failed", "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	event := domain.EventType(params.Get("event"))

	message := map[string]string{
		"product_id":     params.Get("product_id"),
		"quantity":       params.Get("quantity"),
		"payment_status": "failed",
	}
	// every supplied parameter rides along, recognized or not
	for k := range params {
		message[k] = params.Get(k)
	}

	result := h.fanout.Dispatch(ctx, event, message)
	h.log.Info("order intake dispatched", "event", string(event), "product_id", message["product_id"])
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
