package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrOrderNotFound is matched by every OrderNotFoundError.
	ErrOrderNotFound = errors.New("order not found")
)

// OrderNotFoundError reports a Describe call for an identifier the store does not hold.
type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found for the orderId %d", e.OrderID)
}

func (e *OrderNotFoundError) Is(target error) bool {
	return target == ErrOrderNotFound
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidAmount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
