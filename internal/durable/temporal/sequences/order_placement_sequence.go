package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-order-saga/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the placement saga as a single attempt.
// The saga is not idempotent (stock and payment are not compensated), so it is never retried.
func RunOrderPlacementSequence(ctx workflow.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "productId", input.ProductID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var orderID int64
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order placement sequence failed", "productId", input.ProductID, "error", err)
		return 0, err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}
