package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Aggregator composes the read-side view of a placed order.
type Aggregator struct {
	store    ports.Repository
	products ports.ProductLookup
	payments ports.PaymentLookup
}

// NewAggregator wires the read workflow with its collaborators.
func NewAggregator(store ports.Repository, products ports.ProductLookup, payments ports.PaymentLookup) *Aggregator {
	return &Aggregator{store: store, products: products, payments: payments}
}

// Describe returns a fully populated view, an *OrderNotFoundError, or the first lookup fault.
func (a *Aggregator) Describe(ctx context.Context, orderID int64) (*ordertypes.OrderView, error) {
	order, ok, err := a.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if !ok {
		return nil, &OrderNotFoundError{OrderID: orderID}
	}

	var (
		product ports.ProductSummary
		payment ports.PaymentSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := a.products.FetchByID(gctx, order.ProductID)
		if err != nil {
			return fmt.Errorf("fetch product %d: %w", order.ProductID, err)
		}
		product = summary
		return nil
	})
	g.Go(func() error {
		summary, err := a.payments.FetchByOrderID(gctx, order.ID)
		if err != nil {
			return fmt.Errorf("fetch payment for order %d: %w", order.ID, err)
		}
		payment = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ordertypes.OrderView{
		OrderID:   order.ID,
		Status:    order.Status,
		OrderDate: order.OrderDate,
		Amount:    order.Amount,
		ProductDetails: ordertypes.ProductDetails{
			ProductID:   product.ProductID,
			ProductName: product.ProductName,
		},
		PaymentDetails: ordertypes.PaymentDetails{
			PaymentID:   payment.PaymentID,
			Status:      payment.Status,
			PaymentMode: payment.PaymentMode,
			PaymentDate: payment.PaymentDate,
		},
	}, nil
}
