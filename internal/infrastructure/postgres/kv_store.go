package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
)

var _ kvstore.Store = (*KVStore)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_collections (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Querier abstrae pool y tx para las consultas.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KVStore guarda cada colección como una fila JSONB de kv_collections.
type KVStore struct {
	q Querier
}

// NewKVStore construye el store. Llamar EnsureSchema antes del primer uso.
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear kv_collections: %w", err)
	}
	return nil
}

// Get devuelve el JSON guardado; nil si la clave no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.q.QueryRow(ctx, `SELECT value::text FROM kv_collections WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return raw, nil
}

// Set reemplaza la colección completa.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO kv_collections (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// StockValuation calcula en la base la valorización (Σ currentStock × purchasePrice)
// de la colección de productos guardada bajo key. Sirve para conciliar con el reporte en memoria.
func (s *KVStore) StockValuation(ctx context.Context, key string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.q.QueryRow(ctx, `
		SELECT COALESCE(SUM((p->>'currentStock')::numeric * (p->>'purchasePrice')::numeric), 0)
		FROM kv_collections, jsonb_array_elements(value) AS p
		WHERE key = $1`, key).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valorizar %s: %w", key, err)
	}
	return total, nil
}

// Close cierra el pool si el Querier lo es.
func (s *KVStore) Close() {
	if p, ok := s.q.(*pgxpool.Pool); ok {
		p.Close()
	}
}
