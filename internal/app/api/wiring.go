package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/Apurer/go-gin-order-saga/internal/clients/http/httpclient"
	paymentclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/payment"
	productclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/product"
	ordersinventory "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/external/inventory"
	orderspayment "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/external/payment"
	ordersproduct "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/external/product"
	ordersmemory "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-order-saga/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-saga/internal/platform/postgres"
)

// StoreKind names the order store an OrderBackend was built on.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
)

// Shared reports whether other processes built from the same config see the same orders.
func (k StoreKind) Shared() bool {
	return k == StorePostgres
}

// OrderBackend is the assembled orders service together with the store it writes to.
type OrderBackend struct {
	Service ordersports.Service
	Store   StoreKind
	// Cleanup releases the database connection, if any.
	Cleanup func()
}

// BuildOrderService assembles the instrumented orders service with its store and downstream clients.
// A configured POSTGRES_DSN that cannot be used is an error rather than a silent memory fallback.
func BuildOrderService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (OrderBackend, error) {
	logger := effectiveLogger(instruments)

	httpClient := httpclient.New(cfg.DownstreamTimeout)
	products, err := productclient.NewClient(cfg.ProductServiceURL,
		productclient.WithHTTPClient(httpClient),
		productclient.WithMaxRetries(cfg.LookupMaxRetries),
	)
	if err != nil {
		return OrderBackend{}, err
	}
	payments, err := paymentclient.NewClient(cfg.PaymentServiceURL,
		paymentclient.WithHTTPClient(httpClient),
		paymentclient.WithMaxRetries(cfg.LookupMaxRetries),
	)
	if err != nil {
		return OrderBackend{}, err
	}
	gateway := orderspayment.NewGateway(payments)

	store, kind, cleanup, err := buildOrderRepository(ctx, cfg, logger)
	if err != nil {
		return OrderBackend{}, err
	}
	orchestrator := ordersapp.NewOrchestrator(store, ordersinventory.NewReducer(products), gateway, ordersapp.WithLogger(logger))
	aggregator := ordersapp.NewAggregator(store, ordersproduct.NewLookup(products), gateway)

	service := ordersobs.New(
		ordersapp.NewService(orchestrator, aggregator),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return OrderBackend{Service: service, Store: kind, Cleanup: cleanup}, nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, StoreKind, func(), error) {
	db, cleanup, err := platformpostgres.ConnectAndMigrate(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return nil, "", nil, fmt.Errorf("order store: %w", err)
	}
	if db == nil {
		return ordersmemory.NewRepository(), StoreMemory, cleanup, nil
	}
	logger.Info("order store configured with postgres")
	return orderspostgres.NewRepository(db), StorePostgres, cleanup, nil
}

// temporalDialer is swapped in tests.
type temporalDialer func(Config, *platformobservability.Instruments) (client.Client, error)

// selectOrderWorkflows picks how PlaceOrder is dispatched. Temporal is only used when the store is
// shared with the worker; otherwise the worker would write orders this process can never read.
// The returned close func is never nil.
func selectOrderWorkflows(cfg Config, store StoreKind, service ordersports.Service, instruments *platformobservability.Instruments, dial temporalDialer) (ordersports.WorkflowOrchestrator, func()) {
	logger := effectiveLogger(instruments)
	inline := ordersworkflows.NewInlineOrderWorkflows(service)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, running inline PlaceOrder")
		return inline, func() {}
	}
	if !store.Shared() {
		logger.Warn("Temporal requires a shared order store, running inline PlaceOrder",
			slog.String("store", string(store)))
		return inline, func() {}
	}
	temporalClient, err := dial(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}

// ConnectTemporalClient dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, fmt.Errorf("configure temporal tracing interceptor: %w", err)
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
