package types

import (
	"time"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
)

// PlaceOrderInput carries the placement request. It is never persisted.
type PlaceOrderInput struct {
	ProductID   int64
	Quantity    int64
	TotalAmount int64
	PaymentMode domain.PaymentMode
}

// ProductDetails is the product part of an order view.
type ProductDetails struct {
	ProductID   int64
	ProductName string
}

// PaymentDetails is the payment part of an order view.
type PaymentDetails struct {
	PaymentID   int64
	Status      string
	PaymentMode domain.PaymentMode
	PaymentDate time.Time
}

// OrderView is assembled on every read from the store and both lookups.
type OrderView struct {
	OrderID        int64
	Status         domain.Status
	OrderDate      time.Time
	Amount         int64
	ProductDetails ProductDetails
	PaymentDetails PaymentDetails
}
