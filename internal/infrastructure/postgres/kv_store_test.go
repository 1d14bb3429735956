package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

func newStore(t *testing.T) *postgres.KVStore {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	s := postgres.NewKVStore(pool)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func TestKVStore_GetSet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	key := "test_" + t.Name()

	v, err := s.Get(ctx, key+"_ausente")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set(ctx, key, []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Set(ctx, key, []byte(`[{"id":"b"}]`)))
	v, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(v))
}

func TestKVStore_StockValuation(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	key := "test_valuation"

	require.NoError(t, s.Set(ctx, key, []byte(`[
		{"id":"p1","currentStock":15,"purchasePrice":"800"},
		{"id":"p2","currentStock":3,"purchasePrice":"300.5"}]`)))

	total, err := s.StockValuation(ctx, key)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("12901.5")), total.String())
}
