package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
)

// InventoryClient decrements available stock for a product.
type InventoryClient interface {
	Reduce(ctx context.Context, productID, quantity int64) error
}

// PaymentInstruction is the payload handed to the payment collaborator.
type PaymentInstruction struct {
	OrderID     int64
	PaymentMode domain.PaymentMode
	Amount      int64
}

// PaymentOutcome is either a success carrying the payment identifier or a failure carrying its cause.
type PaymentOutcome struct {
	PaymentID int64
	Failure   error
}

// PaymentSucceeded builds a success outcome.
func PaymentSucceeded(paymentID int64) PaymentOutcome {
	return PaymentOutcome{PaymentID: paymentID}
}

// PaymentFailed builds a failure outcome.
func PaymentFailed(cause error) PaymentOutcome {
	return PaymentOutcome{Failure: cause}
}

// Succeeded reports whether the payment went through.
func (o PaymentOutcome) Succeeded() bool {
	return o.Failure == nil
}

// PaymentClient attempts a payment. Faults are reported through the outcome, never as a separate error.
type PaymentClient interface {
	Pay(ctx context.Context, instruction PaymentInstruction) PaymentOutcome
}

// ProductSummary is the product projection embedded in order views.
type ProductSummary struct {
	ProductID   int64
	ProductName string
}

// ProductLookup fetches product summaries for the read side.
type ProductLookup interface {
	FetchByID(ctx context.Context, productID int64) (ProductSummary, error)
}

// PaymentSummary is the payment projection embedded in order views.
type PaymentSummary struct {
	PaymentID   int64
	Status      string
	PaymentMode domain.PaymentMode
	PaymentDate time.Time
}

// PaymentLookup fetches the payment recorded for an order.
type PaymentLookup interface {
	FetchByOrderID(ctx context.Context, orderID int64) (PaymentSummary, error)
}
