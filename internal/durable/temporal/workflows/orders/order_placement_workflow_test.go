package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-order-saga/internal/platform/temporal/activities/orders"
)

type countingService struct {
	id    int64
	err   error
	calls int
	input ordertypes.PlaceOrderInput
}

func (s *countingService) PlaceOrder(_ context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	s.calls++
	s.input = input
	return s.id, s.err
}

func (s *countingService) DescribeOrder(context.Context, int64) (*ordertypes.OrderView, error) {
	return nil, errors.New("not used")
}

func newWorkflowEnv(svc *countingService) *testsuite.TestWorkflowEnvironment {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(orderactivities.NewActivities(svc).PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestOrderPlacementWorkflow_ReturnsOrderID(t *testing.T) {
	svc := &countingService{id: 41}
	env := newWorkflowEnv(svc)
	command := ordertypes.PlaceOrderInput{ProductID: 1, Quantity: 10, TotalAmount: 100, PaymentMode: domain.PaymentModeCash}

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Command: command, TraceID: "abc"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var orderID int64
	require.NoError(t, env.GetWorkflowResult(&orderID))
	require.Equal(t, int64(41), orderID)
	require.Equal(t, command, svc.input)
}

func TestOrderPlacementWorkflow_DoesNotRetryFailedSaga(t *testing.T) {
	svc := &countingService{err: errors.New("stock service down")}
	env := newWorkflowEnv(svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Command: ordertypes.PlaceOrderInput{ProductID: 1, Quantity: 10, TotalAmount: 100, PaymentMode: domain.PaymentModeCash},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.ErrorContains(t, env.GetWorkflowError(), "stock service down")
	require.Equal(t, 1, svc.calls)
}
