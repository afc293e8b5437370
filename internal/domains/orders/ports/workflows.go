package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
)

// WorkflowOrchestrator dispatches the placement saga, either in-process or on a workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error)
}
