package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
)

// Repository is the durable keyed store for orders.
type Repository interface {
	// Save persists the order, assigning an identifier when ID is zero, and returns the stored copy.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByID reports ok=false with a nil error when the order does not exist.
	FindByID(ctx context.Context, id int64) (order *domain.Order, ok bool, err error)
}
