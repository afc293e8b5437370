package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.Error(t, err)
}

func TestConnectAndMigrate_EmptyDSNFallsBack(t *testing.T) {
	db, cleanup, err := ConnectAndMigrate(context.Background(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestConnectAndMigrate_UnreachableDSNFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dsn := "host=127.0.0.1 port=1 user=orders password=orders dbname=orders sslmode=disable connect_timeout=2"

	db, cleanup, err := ConnectAndMigrate(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	require.ErrorContains(t, err, "connect to postgres")
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
