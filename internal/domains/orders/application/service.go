package application

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Service exposes both order workflows behind the inbound port.
type Service struct {
	orchestrator *Orchestrator
	aggregator   *Aggregator
}

// NewService wires the orders service with its workflows.
func NewService(orchestrator *Orchestrator, aggregator *Aggregator) *Service {
	return &Service{orchestrator: orchestrator, aggregator: aggregator}
}

// PlaceOrder runs the placement saga.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	return s.orchestrator.Place(ctx, input)
}

// DescribeOrder composes the order view.
func (s *Service) DescribeOrder(ctx context.Context, orderID int64) (*ordertypes.OrderView, error) {
	return s.aggregator.Describe(ctx, orderID)
}

var _ ports.Service = (*Service)(nil)
