package domain

import (
	"errors"
	"time"
)

// Status enumerates the order lifecycle driven by the placement saga.
type Status string

const (
	StatusCreated       Status = "CREATED"
	StatusPlaced        Status = "PLACED"
	StatusPaymentFailed Status = "PAYMENT_FAILED"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusPlaced || s == StatusPaymentFailed
}

// PaymentMode is forwarded to the payment collaborator, which owns the closed set of values.
type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "CASH"
	PaymentModePaypal     PaymentMode = "PAYPAL"
	PaymentModeDebitCard  PaymentMode = "DEBIT_CARD"
	PaymentModeCreditCard PaymentMode = "CREDIT_CARD"
	PaymentModeApplePay   PaymentMode = "APPLE_PAY"
)

var (
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

// Order is the aggregate written by the placement saga.
type Order struct {
	ID        int64
	ProductID int64
	Quantity  int64
	Amount    int64
	Status    Status
	OrderDate time.Time
}

// NewOrder builds an order in CREATED status. The identifier is left for the store to assign.
func NewOrder(productID, quantity, amount int64, orderDate time.Time) (*Order, error) {
	order := &Order{
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Status:    StatusCreated,
		OrderDate: orderDate,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.Amount < 0 {
		return ErrInvalidAmount
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Finalize moves a CREATED order to one of the terminal statuses. Statuses never revert.
func (o *Order) Finalize(status Status) error {
	if o.Status != StatusCreated || !status.IsTerminal() {
		return ErrInvalidTransition
	}
	o.Status = status
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusCreated, StatusPlaced, StatusPaymentFailed:
		return true
	default:
		return false
	}
}
