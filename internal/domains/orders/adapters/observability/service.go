package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderapp "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-saga/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core orders service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.Int64("order.product_id", input.ProductID),
		attribute.Int64("order.quantity", input.Quantity),
		attribute.String("order.payment_mode", string(input.PaymentMode)),
	))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.Int64("order.product_id", input.ProductID),
		slog.Int64("order.quantity", input.Quantity),
		slog.Int64("order.amount", input.TotalAmount))
	id, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordPlaceFailed(ctx)
		return 0, s.handleError(ctx, span, err, "failed to place order", slog.Int64("order.product_id", input.ProductID))
	}
	span.SetAttributes(attribute.Int64("order.id", id))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.Int64("order.id", id))
	return id, nil
}

func (s *Service) DescribeOrder(ctx context.Context, orderID int64) (*ordertypes.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.DescribeOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "describing order", slog.Int64("order.id", orderID))
	view, err := s.inner.DescribeOrder(ctx, orderID)
	if errors.Is(err, orderapp.ErrOrderNotFound) {
		// expected outcome; keep the span status unset
		s.metrics.recordNotFound(ctx)
		s.logInfo(ctx, "order not found", slog.Int64("order.id", orderID))
		return nil, err
	}
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to describe order", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.String("order.status", string(view.Status)))
	s.metrics.recordDescribed(ctx, string(view.Status))
	s.logInfo(ctx, "order described", slog.Int64("order.id", view.OrderID), slog.String("status", string(view.Status)))
	return view, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	placed      metric.Int64Counter
	placeFailed metric.Int64Counter
	described   metric.Int64Counter
	notFound    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders that reached a terminal status"))
	placeFailed, _ := m.Int64Counter("orders.service.place_failed", metric.WithDescription("Number of placements aborted by inventory or storage faults"))
	described, _ := m.Int64Counter("orders.service.described", metric.WithDescription("Number of order views composed"))
	notFound, _ := m.Int64Counter("orders.service.not_found", metric.WithDescription("Number of lookups for unknown orders"))
	return serviceMetrics{placed: placed, placeFailed: placeFailed, described: described, notFound: notFound}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.placed != nil {
		m.placed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPlaceFailed(ctx context.Context) {
	if m.placeFailed != nil {
		m.placeFailed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDescribed(ctx context.Context, status string) {
	if m.described != nil {
		m.described.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", status)))
	}
}

func (m serviceMetrics) recordNotFound(ctx context.Context) {
	if m.notFound != nil {
		m.notFound.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ orderports.Service = (*Service)(nil)
