package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-saga/internal/clients/http/httpclient"
)

func TestDoPayment_PostsRequestAndDecodesID(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("42"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	id, err := client.DoPayment(context.Background(), Request{OrderID: 5, Amount: 100, PaymentMode: "CASH"})
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, Request{OrderID: 5, Amount: 100, PaymentMode: "CASH"}, got)
}

func TestDoPayment_IsNeverRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithMaxRetries(3))
	require.NoError(t, err)
	_, err = client.DoPayment(context.Background(), Request{OrderID: 5, Amount: 100, PaymentMode: "CASH"})

	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetPaymentByOrderID_DecodesDetails(t *testing.T) {
	paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/payment/order/5", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Details{
			PaymentID: 42, Status: "SUCCESS", PaymentMode: "CASH", Amount: 100, PaymentDate: paidAt, OrderID: 5,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	details, err := client.GetPaymentByOrderID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(42), details.PaymentID)
	require.Equal(t, "SUCCESS", details.Status)
	require.True(t, paidAt.Equal(details.PaymentDate))
}

func TestGetPaymentByOrderID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	_, err = client.GetPaymentByOrderID(context.Background(), 5)

	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
