package inventory

import (
	"context"
	"errors"

	productclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/product"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Reducer implements the inventory port against the product service.
type Reducer struct {
	client *productclient.Client
}

// NewReducer wires a product HTTP client into the inventory adapter.
func NewReducer(client *productclient.Client) *Reducer {
	return &Reducer{client: client}
}

// Reduce decrements stock; insufficient stock and transport faults surface as errors.
func (r *Reducer) Reduce(ctx context.Context, productID, quantity int64) error {
	if r == nil || r.client == nil {
		return errors.New("inventory reducer not configured")
	}
	return r.client.ReduceQuantity(ctx, productID, quantity)
}

var _ ports.InventoryClient = (*Reducer)(nil)
