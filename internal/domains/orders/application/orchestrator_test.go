package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

func cashRequest() ordertypes.PlaceOrderInput {
	return ordertypes.PlaceOrderInput{
		ProductID:   1,
		Quantity:    10,
		TotalAmount: 100,
		PaymentMode: domain.PaymentModeCash,
	}
}

func TestPlace_PaymentSuccessMarksPlaced(t *testing.T) {
	store := newRecordingStore()
	inventory := newFakeInventory(map[int64]int64{1: 50})
	payments := &fakePayments{}
	orchestrator := NewOrchestrator(store, inventory, payments)

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)
	require.NotZero(t, id)

	order, ok, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StatusPlaced, order.Status)
	require.Equal(t, int64(100), order.Amount)
	require.Equal(t, int64(10), order.Quantity)
	require.Equal(t, []domain.Status{domain.StatusCreated, domain.StatusPlaced}, store.writes())
	require.Equal(t, 1, inventory.calls)
	require.Equal(t, 1, payments.calls)
}

func TestPlace_PaymentInstructionReferencesPersistedOrder(t *testing.T) {
	store := newRecordingStore()
	payments := &fakePayments{}
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), payments)

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)

	require.Equal(t, []ports.PaymentInstruction{{
		OrderID:     id,
		PaymentMode: domain.PaymentModeCash,
		Amount:      100,
	}}, payments.instructions)
}

func TestPlace_PaymentFailureMarksPaymentFailed(t *testing.T) {
	store := newRecordingStore()
	payments := &fakePayments{failure: errors.New("card declined")}
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), payments)

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)
	require.NotZero(t, id)

	order, ok, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StatusPaymentFailed, order.Status)
	require.Equal(t, []domain.Status{domain.StatusCreated, domain.StatusPaymentFailed}, store.writes())
}

func TestPlace_PaymentPanicMarksPaymentFailed(t *testing.T) {
	store := newRecordingStore()
	payments := &fakePayments{panicWith: "processor exploded"}
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), payments)

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)

	order, _, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaymentFailed, order.Status)
	require.Equal(t, []domain.Status{domain.StatusCreated, domain.StatusPaymentFailed}, store.writes())
}

func TestPlace_InventoryFailureAbortsBeforePersistence(t *testing.T) {
	store := newRecordingStore()
	inventoryErr := errors.New("inventory unreachable")
	inventory := newFakeInventory(map[int64]int64{1: 50})
	inventory.err = inventoryErr
	payments := &fakePayments{}
	orchestrator := NewOrchestrator(store, inventory, payments)

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.ErrorIs(t, err, inventoryErr)
	require.Zero(t, id)
	require.Empty(t, store.writes())
	require.Equal(t, 0, store.Len())
	require.Equal(t, 0, payments.calls)
}

func TestPlace_InsufficientStockPropagates(t *testing.T) {
	store := newRecordingStore()
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 5}), &fakePayments{})

	_, err := orchestrator.Place(context.Background(), cashRequest())
	require.Error(t, err)
	require.Equal(t, 0, store.Len())
}

// Stock reduced before a failed payment is not restored.
func TestPlace_PaymentFailureLeavesStockReduced(t *testing.T) {
	inventory := newFakeInventory(map[int64]int64{1: 50})
	orchestrator := NewOrchestrator(newRecordingStore(), inventory, &fakePayments{failure: errors.New("declined")})

	_, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)
	require.Equal(t, int64(40), inventory.stock[1])
}

func TestPlace_FirstSaveFailurePropagatesWithoutPayment(t *testing.T) {
	storeErr := errors.New("disk full")
	store := newRecordingStore()
	store.failOn = 1
	store.failErr = storeErr
	payments := &fakePayments{}
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), payments)

	_, err := orchestrator.Place(context.Background(), cashRequest())
	require.ErrorIs(t, err, storeErr)
	require.Equal(t, 0, payments.calls)
}

// A payment taken before a failed final save is not reversed.
func TestPlace_FinalSaveFailurePropagatesAfterPayment(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := newRecordingStore()
	store.failOn = 2
	store.failErr = storeErr
	payments := &fakePayments{}
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), payments)

	_, err := orchestrator.Place(context.Background(), cashRequest())
	require.ErrorIs(t, err, storeErr)
	require.Equal(t, 1, payments.calls)

	order, ok, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StatusCreated, order.Status)
}

func TestPlace_InvalidInputRejectedBeforeInventory(t *testing.T) {
	inventory := newFakeInventory(map[int64]int64{1: 50})
	orchestrator := NewOrchestrator(newRecordingStore(), inventory, &fakePayments{})

	input := cashRequest()
	input.Quantity = 0
	_, err := orchestrator.Place(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	require.Equal(t, 0, inventory.calls)
}

func TestPlace_UsesClockForOrderDate(t *testing.T) {
	fixed := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	store := newRecordingStore()
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), &fakePayments{},
		WithClock(func() time.Time { return fixed }))

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)

	order, _, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, fixed, order.OrderDate)
}

func TestPlace_ReadsClockOnce(t *testing.T) {
	start := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Hour)
	}
	store := newRecordingStore()
	orchestrator := NewOrchestrator(store, newFakeInventory(map[int64]int64{1: 50}), &fakePayments{}, WithClock(clock))

	id, err := orchestrator.Place(context.Background(), cashRequest())
	require.NoError(t, err)

	order, _, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, start, order.OrderDate)
}
