package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	orderworkflows "github.com/Apurer/go-gin-order-saga/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/Apurer/go-gin-order-saga/internal/platform/temporal/activities/orders"
)

type stubService struct {
	id    int64
	err   error
	input ordertypes.PlaceOrderInput
}

func (s *stubService) PlaceOrder(_ context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	s.input = input
	return s.id, s.err
}

func (s *stubService) DescribeOrder(context.Context, int64) (*ordertypes.OrderView, error) {
	return nil, errors.New("not used")
}

func sampleInput() ordertypes.PlaceOrderInput {
	return ordertypes.PlaceOrderInput{ProductID: 1, Quantity: 10, TotalAmount: 100, PaymentMode: domain.PaymentModeCash}
}

func TestInlineOrderWorkflows_Delegates(t *testing.T) {
	svc := &stubService{id: 5}
	id, err := NewInlineOrderWorkflows(svc).PlaceOrder(context.Background(), sampleInput())
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
	require.Equal(t, sampleInput(), svc.input)
}

func TestInlineOrderWorkflows_NotConfigured(t *testing.T) {
	_, err := NewInlineOrderWorkflows(nil).PlaceOrder(context.Background(), sampleInput())
	require.Error(t, err)
}

func TestTemporalOrderWorkflows_StartsWorkflowAndReturnsID(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.ID == "order-placement-fixed" &&
			opts.TaskQueue == orderworkflows.OrderPlacementTaskQueue &&
			opts.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}), orderworkflows.OrderPlacementWorkflowName, mock.MatchedBy(func(in orderworkflows.OrderPlacementWorkflowInput) bool {
		return in.Command == sampleInput()
	})).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*(args.Get(1).(*int64)) = 17
	}).Return(nil)

	orchestrator := NewTemporalOrderWorkflows(temporalClient)
	orchestrator.newID = func() string { return "fixed" }

	id, err := orchestrator.PlaceOrder(context.Background(), sampleInput())
	require.NoError(t, err)
	require.Equal(t, int64(17), id)
	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalOrderWorkflows_RestoresInvalidInput(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("quantity must be greater than zero", orderactivities.InvalidInputErrorType, nil))

	_, err := NewTemporalOrderWorkflows(temporalClient).PlaceOrder(context.Background(), sampleInput())
	require.ErrorIs(t, err, ordersapp.ErrInvalidInput)
}

func TestTemporalOrderWorkflows_StartFailure(t *testing.T) {
	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("frontend unavailable"))

	_, err := NewTemporalOrderWorkflows(temporalClient).PlaceOrder(context.Background(), sampleInput())
	require.ErrorContains(t, err, "frontend unavailable")
}

func TestTemporalOrderWorkflows_NotConfigured(t *testing.T) {
	_, err := NewTemporalOrderWorkflows(nil).PlaceOrder(context.Background(), sampleInput())
	require.Error(t, err)
}
