package domain

import (
	"encoding/json"
	"strconv"
)

type EventType string

const (
	EventOrderPlacement EventType = "order_placement"
	EventPaymentFailure EventType = "payment_failure"
	EventOutOfStock     EventType = "out_of_stock"
)

const PaymentSuccessful = "successful"

// OrderRequest is the payload carried through one fulfillment execution.
// Quantity stays in its raw string form until the validator normalizes it;
// intake accepts it as either a JSON number or a string. Fields this service
// does not recognize survive the round trip in Passthrough.
type OrderRequest struct {
	Event         EventType
	ProductID     string
	Quantity      string
	PaymentStatus string
	Message       string
	Passthrough   map[string]string
}

// Units parses the requested quantity as a positive integer.
func (r OrderRequest) Units() (int, error) {
	n, err := strconv.Atoi(r.Quantity)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func (r OrderRequest) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Passthrough)+5)
	for k, v := range r.Passthrough {
		m[k] = v
	}
	if r.Event != "" {
		m["event"] = string(r.Event)
	}
	m["product_id"] = r.ProductID
	if n, err := strconv.Atoi(r.Quantity); err == nil {
		m["quantity"] = n
	} else {
		m["quantity"] = r.Quantity
	}
	m["payment_status"] = r.PaymentStatus
	if r.Message != "" {
		m["message"] = r.Message
	}
	return json.Marshal(m)
}

func (r *OrderRequest) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = OrderRequest{}
	for k, raw := range m {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// quantity arrives as a bare number in normalized payloads
			s = string(raw)
		}
		switch k {
		case "event":
			r.Event = EventType(s)
		case "product_id":
			r.ProductID = s
		case "quantity":
			r.Quantity = s
		case "payment_status":
			r.PaymentStatus = s
		case "message":
			r.Message = s
		default:
			if r.Passthrough == nil {
				r.Passthrough = make(map[string]string)
			}
			r.Passthrough[k] = s
		}
	}
	return nil
}

// OrderResult is what a completed inventory decrement reports downstream.
type OrderResult struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
}
