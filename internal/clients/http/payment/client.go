// Package payment is the HTTP client for the payment service.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/Apurer/go-gin-order-saga/internal/clients/http/httpclient"
)

// Request is the body of POST /payment.
type Request struct {
	OrderID         int64  `json:"orderId"`
	Amount          int64  `json:"amount"`
	PaymentMode     string `json:"paymentMode"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
}

// Details is the payment service's read model for an order's payment.
type Details struct {
	PaymentID   int64     `json:"paymentId"`
	Status      string    `json:"status"`
	PaymentMode string    `json:"paymentMode"`
	Amount      int64     `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	OrderID     int64     `json:"orderId"`
}

// Client calls the payment service.
type Client struct {
	server     string
	httpClient *http.Client
	maxRetries uint64
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithMaxRetries enables bounded retries for GetPaymentByOrderID. Charges are never retried.
func WithMaxRetries(n uint64) Option {
	return func(cl *Client) { cl.maxRetries = n }
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	server, err := httpclient.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("payment client: %w", err)
	}
	c := &Client{server: server, httpClient: httpclient.New(httpclient.DefaultTimeout)}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// DoPayment calls POST /payment and returns the payment id assigned by the service.
func (c *Client) DoPayment(ctx context.Context, body Request) (int64, error) {
	if c == nil || c.httpClient == nil {
		return 0, errors.New("payment client not configured")
	}
	queryURL, err := c.resolve("./payment")
	if err != nil {
		return 0, err
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, queryURL.String(), bytes.NewReader(buf))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call payment service: %w", err)
	}
	defer resp.Body.Close()
	if err := httpclient.CheckStatus(resp); err != nil {
		return 0, err
	}
	var paymentID int64
	if err := json.NewDecoder(resp.Body).Decode(&paymentID); err != nil {
		return 0, fmt.Errorf("decode payment id: %w", err)
	}
	return paymentID, nil
}

// GetPaymentByOrderID calls GET /payment/order/{orderId}.
func (c *Client) GetPaymentByOrderID(ctx context.Context, orderID int64) (*Details, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("payment client not configured")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "orderId", runtime.ParamLocationPath, orderID)
	if err != nil {
		return nil, err
	}
	queryURL, err := c.resolve(fmt.Sprintf("./payment/order/%s", pathParam))
	if err != nil {
		return nil, err
	}

	var details Details
	err = httpclient.Retry(ctx, c.maxRetries, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("call payment service: %w", err)
		}
		defer resp.Body.Close()
		if err := httpclient.CheckStatus(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
			return fmt.Errorf("decode payment for order %d: %w", orderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) resolve(operationPath string) (*url.URL, error) {
	serverURL, err := url.Parse(c.server)
	if err != nil {
		return nil, err
	}
	return serverURL.Parse(operationPath)
}
