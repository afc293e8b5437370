package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Orchestrator runs the place-order saga: reduce stock, record the order, attempt payment,
// record the terminal status.
type Orchestrator struct {
	store     ports.Repository
	inventory ports.InventoryClient
	payments  ports.PaymentClient
	logger    *slog.Logger
	now       func() time.Time
}

// OrchestratorOption tunes optional collaborators.
type OrchestratorOption func(*Orchestrator)

// WithLogger records payment failures, which are otherwise absorbed into the order status.
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOrchestrator wires the saga with its collaborators.
func NewOrchestrator(store ports.Repository, inventory ports.InventoryClient, payments ports.PaymentClient, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		inventory: inventory,
		payments:  payments,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Place returns the identifier of an order in PLACED or PAYMENT_FAILED status. Only input,
// inventory and storage faults are returned as errors; payment faults end up in the status.
//
// Known gap: stock reduced in the first step is not restored when payment fails, and a payment
// taken before a failed final save is not reversed.
func (o *Orchestrator) Place(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	order, err := domain.NewOrder(input.ProductID, input.Quantity, input.TotalAmount, o.now())
	if err != nil {
		return 0, mapError(err)
	}

	if err := o.inventory.Reduce(ctx, input.ProductID, input.Quantity); err != nil {
		return 0, fmt.Errorf("reduce stock for product %d: %w", input.ProductID, err)
	}

	saved, err := o.store.Save(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("save created order: %w", err)
	}

	outcome := o.pay(ctx, ports.PaymentInstruction{
		OrderID:     saved.ID,
		PaymentMode: input.PaymentMode,
		Amount:      input.TotalAmount,
	})
	status := domain.StatusPlaced
	if !outcome.Succeeded() {
		status = domain.StatusPaymentFailed
		o.logger.LogAttrs(ctx, slog.LevelError, "payment failed, marking order",
			slog.Int64("order.id", saved.ID),
			slog.String("status", string(status)),
			slog.String("error", outcome.Failure.Error()))
	}
	if err := saved.Finalize(status); err != nil {
		return 0, fmt.Errorf("finalize order %d: %w", saved.ID, err)
	}
	if _, err := o.store.Save(ctx, saved); err != nil {
		return 0, fmt.Errorf("save %s order %d: %w", status, saved.ID, err)
	}
	return saved.ID, nil
}

// pay turns a panicking collaborator into a failure outcome.
func (o *Orchestrator) pay(ctx context.Context, instruction ports.PaymentInstruction) (outcome ports.PaymentOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = ports.PaymentFailed(fmt.Errorf("payment client panicked: %v", r))
		}
	}()
	return o.payments.Pay(ctx, instruction)
}
