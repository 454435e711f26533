package domain

import "errors"

// FailureKind groups failure codes by how the workflow treats them.
type FailureKind string

const (
	KindInput    FailureKind = "input"
	KindLookup   FailureKind = "lookup"
	KindStock    FailureKind = "stock"
	KindPayment  FailureKind = "payment"
	KindDelivery FailureKind = "delivery"
)

const (
	CodeMissingField         = "MissingField"
	CodeInvalidQuantity      = "InvalidQuantity"
	CodeProductLookupError   = "ProductLookupError"
	CodeInvalidProduct       = "InvalidProduct"
	CodeOutOfStock           = "OutOfStock"
	CodeMissingPaymentStatus = "MissingPaymentStatus"
	CodePaymentFailure       = "PaymentFailure"
	CodeInvalidInput         = "InvalidInput"
	CodeInsufficientStock    = "InsufficientStock"
	CodeUpdateError          = "UpdateError"
	CodeDeliveryError        = "DeliveryError"
)

// Failure is the tagged error every handler returns instead of letting a
// runtime error escape. The workflow maps any Failure to its failed terminal
// state and surfaces Code and Reason to the alert channel.
type Failure struct {
	Code   string
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	if f.Reason == "" {
		return f.Code
	}
	return f.Code + ": " + f.Reason
}

func NewFailure(code string, kind FailureKind, reason string) *Failure {
	return &Failure{Code: code, Kind: kind, Reason: reason}
}

// AsFailure unwraps err into a Failure, or wraps it as an input failure so
// the caller always has a code to route on.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Code: CodeInvalidInput, Kind: KindInput, Reason: err.Error()}
}

// IsCode reports whether err is a Failure carrying the given code.
func IsCode(err error, code string) bool {
	var f *Failure
	return errors.As(err, &f) && f.Code == code
}
