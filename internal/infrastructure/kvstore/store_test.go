package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backends clave-valor
// ──────────────────────────────────────────────────────────────────────────────

func exerciseStore(t *testing.T, s kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	v, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, v, "una clave inexistente devuelve nil sin error")

	require.NoError(t, s.Set(ctx, "products", []byte(`[{"id":"a"}]`)))
	v, err = s.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(v))

	require.NoError(t, s.Set(ctx, "products", []byte(`[]`)))
	v, err = s.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v), "Set reemplaza el valor completo")
}

func TestMemoryStore_GetSet(t *testing.T) {
	exerciseStore(t, kvstore.NewMemoryStore())
}

func TestMemoryStore_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()
	buf := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[1] = '9'

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v), "mutar el buffer original no debe alterar el store")
}

func TestFileStore_GetSet(t *testing.T) {
	s, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_EscribeArchivoPorColeccion(t *testing.T) {
	dir := t.TempDir()
	s, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "movements", []byte(`[]`)))

	raw, err := os.ReadFile(filepath.Join(dir, "movements.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar archivos temporales")
}

func TestFileStore_RechazaClavesConRuta(t *testing.T) {
	s, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Set(context.Background(), "../fuera", []byte(`[]`)))
	_, err = s.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestRedisStore_Integracion(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	s := kvstore.NewRedisStore(addr, "", 0)
	defer s.Close()
	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)
}
