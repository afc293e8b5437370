package product

import (
	"context"
	"errors"

	productclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/product"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// Lookup implements the product lookup port against the product service.
type Lookup struct {
	client *productclient.Client
}

// NewLookup wires a product HTTP client into the lookup adapter.
func NewLookup(client *productclient.Client) *Lookup {
	return &Lookup{client: client}
}

// FetchByID returns the product projection used in order views.
func (l *Lookup) FetchByID(ctx context.Context, productID int64) (ports.ProductSummary, error) {
	if l == nil || l.client == nil {
		return ports.ProductSummary{}, errors.New("product lookup not configured")
	}
	product, err := l.client.GetProduct(ctx, productID)
	if err != nil {
		return ports.ProductSummary{}, err
	}
	return ports.ProductSummary{ProductID: product.ProductID, ProductName: product.ProductName}, nil
}

var _ ports.ProductLookup = (*Lookup)(nil)
