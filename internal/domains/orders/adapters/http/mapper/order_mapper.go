package mapper

import (
	"time"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
)

// PlaceOrderRequest is the body of POST /order/placeOrder.
type PlaceOrderRequest struct {
	ProductID   int64  `json:"productId"`
	Quantity    int64  `json:"quantity"`
	TotalAmount int64  `json:"totalAmount"`
	PaymentMode string `json:"paymentMode"`
}

// ProductDetails is the product part of OrderResponse.
type ProductDetails struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
}

// PaymentDetails is the payment part of OrderResponse.
type PaymentDetails struct {
	PaymentID     int64     `json:"paymentId"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMode   string    `json:"paymentMode"`
	PaymentDate   time.Time `json:"paymentDate"`
}

// OrderResponse is the body of GET /order/:orderId.
type OrderResponse struct {
	OrderID        int64          `json:"orderId"`
	OrderDate      time.Time      `json:"orderDate"`
	OrderStatus    string         `json:"orderStatus"`
	Amount         int64          `json:"amount"`
	ProductDetails ProductDetails `json:"productDetails"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}

// ToPlaceOrderInput converts a transport request into the application command.
func ToPlaceOrderInput(req PlaceOrderRequest) ordertypes.PlaceOrderInput {
	return ordertypes.PlaceOrderInput{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		PaymentMode: domain.PaymentMode(req.PaymentMode),
	}
}

// FromOrderView converts the aggregated view into the transport representation.
func FromOrderView(view *ordertypes.OrderView) OrderResponse {
	if view == nil {
		return OrderResponse{}
	}
	return OrderResponse{
		OrderID:     view.OrderID,
		OrderDate:   view.OrderDate,
		OrderStatus: string(view.Status),
		Amount:      view.Amount,
		ProductDetails: ProductDetails{
			ProductID:   view.ProductDetails.ProductID,
			ProductName: view.ProductDetails.ProductName,
		},
		PaymentDetails: PaymentDetails{
			PaymentID:     view.PaymentDetails.PaymentID,
			PaymentStatus: view.PaymentDetails.Status,
			PaymentMode:   string(view.PaymentDetails.PaymentMode),
			PaymentDate:   view.PaymentDetails.PaymentDate,
		},
	}
}
