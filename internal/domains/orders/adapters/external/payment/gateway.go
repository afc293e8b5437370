package payment

import (
	"context"
	"errors"
	"fmt"

	paymentclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/payment"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Gateway implements both the payment port and the payment lookup port.
type Gateway struct {
	client *paymentclient.Client
}

// NewGateway wires a payment HTTP client into the gateway adapter.
func NewGateway(client *paymentclient.Client) *Gateway {
	return &Gateway{client: client}
}

// Pay charges the order. Every fault, including a missing client, becomes a failure outcome.
func (g *Gateway) Pay(ctx context.Context, instruction ports.PaymentInstruction) ports.PaymentOutcome {
	if g == nil || g.client == nil {
		return ports.PaymentFailed(errors.New("payment gateway not configured"))
	}
	paymentID, err := g.client.DoPayment(ctx, ToRequest(instruction))
	if err != nil {
		return ports.PaymentFailed(fmt.Errorf("pay order %d: %w", instruction.OrderID, err))
	}
	return ports.PaymentSucceeded(paymentID)
}

// FetchByOrderID returns the payment recorded for the order.
func (g *Gateway) FetchByOrderID(ctx context.Context, orderID int64) (ports.PaymentSummary, error) {
	if g == nil || g.client == nil {
		return ports.PaymentSummary{}, errors.New("payment gateway not configured")
	}
	details, err := g.client.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return ports.PaymentSummary{}, err
	}
	return FromDetails(details), nil
}

var (
	_ ports.PaymentClient = (*Gateway)(nil)
	_ ports.PaymentLookup = (*Gateway)(nil)
)
