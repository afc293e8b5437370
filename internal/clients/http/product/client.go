// Package product is the HTTP client for the product service, which owns catalog data and stock.
package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/Apurer/go-gin-order-saga/internal/clients/http/httpclient"
)

// Product mirrors the product service's read model.
type Product struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

// Client calls the product service endpoints used by the order service.
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

// WithMaxRetries enables bounded retries for GetProduct. Stock reduction is never retried.
func WithMaxRetries(n uint64) Option {
	return func(cl *Client) { cl.maxRetries = n }
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	server, err := httpclient.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("product client: %w", err)
	}
	c := &Client{server: server, httpClient: httpclient.New(httpclient.DefaultTimeout)}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// ReduceQuantity calls PUT /product/reduceQuantity/{id}?quantity=N.
func (c *Client) ReduceQuantity(ctx context.Context, productID, quantity int64) error {
	if c == nil || c.httpClient == nil {
		return errors.New("product client not configured")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, productID)
	if err != nil {
		return err
	}
	queryURL, err := c.resolve(fmt.Sprintf("./product/reduceQuantity/%s", pathParam))
	if err != nil {
		return err
	}
	queryFrag, err := runtime.StyleParamWithLocation("form", true, "quantity", runtime.ParamLocationQuery, quantity)
	if err != nil {
		return err
	}
	query, err := url.ParseQuery(queryFrag)
	if err != nil {
		return err
	}
	queryURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, queryURL.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()
	return httpclient.CheckStatus(resp)
}

// GetProduct calls GET /product/{id}.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("product client not configured")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, productID)
	if err != nil {
		return nil, err
	}
	queryURL, err := c.resolve(fmt.Sprintf("./product/%s", pathParam))
	if err != nil {
		return nil, err
	}

	var product Product
	err = httpclient.Retry(ctx, c.maxRetries, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("call product service: %w", err)
		}
		defer resp.Body.Close()
		if err := httpclient.CheckStatus(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
			return fmt.Errorf("decode product %d: %w", productID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) resolve(operationPath string) (*url.URL, error) {
	serverURL, err := url.Parse(c.server)
	if err != nil {
		return nil, err
	}
	return serverURL.Parse(operationPath)
}
