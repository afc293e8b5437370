package application

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

type fakeInventory struct {
	mu    sync.Mutex
	stock map[int64]int64
	calls int
	err   error
}

func newFakeInventory(stock map[int64]int64) *fakeInventory {
	return &fakeInventory{stock: stock}
}

func (f *fakeInventory) Reduce(_ context.Context, productID, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.stock[productID] < quantity {
		return errors.New("insufficient stock")
	}
	f.stock[productID] -= quantity
	return nil
}

type fakePayments struct {
	mu           sync.Mutex
	calls        int
	instructions []ports.PaymentInstruction
	failure      error
	panicWith    any
	nextID       int64
}

func (f *fakePayments) Pay(_ context.Context, instruction ports.PaymentInstruction) ports.PaymentOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.instructions = append(f.instructions, instruction)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.failure != nil {
		return ports.PaymentFailed(f.failure)
	}
	f.nextID++
	return ports.PaymentSucceeded(f.nextID)
}

// recordingStore wraps the in-memory store and keeps the status of every write.
type recordingStore struct {
	*memory.Repository
	mu       sync.Mutex
	statuses []domain.Status
	failOn   int
	failErr  error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Repository: memory.NewRepository()}
}

func (s *recordingStore) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	s.statuses = append(s.statuses, order.Status)
	attempt := len(s.statuses)
	s.mu.Unlock()
	if s.failOn > 0 && attempt == s.failOn {
		return nil, s.failErr
	}
	return s.Repository.Save(ctx, order)
}

func (s *recordingStore) writes() []domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Status(nil), s.statuses...)
}

type fakeProducts struct {
	summaries map[int64]ports.ProductSummary
	err       error
	wait      func(ctx context.Context) error
}

func (f *fakeProducts) FetchByID(ctx context.Context, productID int64) (ports.ProductSummary, error) {
	if f.wait != nil {
		if err := f.wait(ctx); err != nil {
			return ports.ProductSummary{}, err
		}
	}
	if f.err != nil {
		return ports.ProductSummary{}, f.err
	}
	summary, ok := f.summaries[productID]
	if !ok {
		return ports.ProductSummary{}, errors.New("product not found")
	}
	return summary, nil
}

type fakePaymentLookup struct {
	summaries map[int64]ports.PaymentSummary
	err       error
	wait      func(ctx context.Context) error
}

func (f *fakePaymentLookup) FetchByOrderID(ctx context.Context, orderID int64) (ports.PaymentSummary, error) {
	if f.wait != nil {
		if err := f.wait(ctx); err != nil {
			return ports.PaymentSummary{}, err
		}
	}
	if f.err != nil {
		return ports.PaymentSummary{}, f.err
	}
	summary, ok := f.summaries[orderID]
	if !ok {
		return ports.PaymentSummary{}, errors.New("payment not found")
	}
	return summary, nil
}
