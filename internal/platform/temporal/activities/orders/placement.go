package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the whole placement saga in one activity execution.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// InvalidInputErrorType tags rejected requests so callers can map them back to ErrInvalidInput.
	InvalidInputErrorType = "InvalidOrderInput"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the saga and returns the order id. Invalid input is reported as non-retryable.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "productId", input.ProductID)
		return 0, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "productId", input.ProductID, "quantity", input.Quantity)
	orderID, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "productId", input.ProductID, "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
		}
		return 0, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", orderID)
	return orderID, nil
}
