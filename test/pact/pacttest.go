//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Participants. The order service consumes the product and payment services and
// is itself consumed by the order portal.
const (
	OrderServiceName   = "order-service"
	ProductServiceName = "product-service"
	PaymentServiceName = "payment-service"
	OrderPortalName    = "order-portal"
)

const (
	StateProductInStock    = "product 1 has stock"
	StateProductOutOfStock = "product 1 has no stock"
	StateProductExists     = "product 1 exists"
	StatePaymentsAccepted  = "payments are accepted"
	StatePaymentForOrder   = "a payment exists for order 301"
	StateOrderExists       = "order 301 exists"
	StateOrderMissing      = "no order with id 999"
	StateOrdersBaseline    = "orders baseline"
)

const (
	ExampleProductID   int64 = 1
	ExampleProductName       = "iPhone 15"
	ExistingOrderID    int64 = 301
	MissingOrderID     int64 = 999
	ExamplePaymentID   int64 = 42
	ExampleAmount      int64 = 1000
	ExamplePaymentMode       = "CASH"
	ExamplePaymentDate       = "2024-06-12T10:00:00Z"
)

// TimestampPattern matches RFC 3339 timestamps as produced by encoding/json.
const TimestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for a consumer/provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
