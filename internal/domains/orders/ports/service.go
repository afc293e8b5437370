package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
)

// Service exposes the order use cases to driving adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error)
	DescribeOrder(ctx context.Context, orderID int64) (*ordertypes.OrderView, error)
}
