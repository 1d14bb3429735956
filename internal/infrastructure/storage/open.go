// Package storage elige e inicializa el backend del almacén clave-valor según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Open construye el Store de cfg.Store.Driver y devuelve la función que libera sus conexiones.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (kvstore.Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return kvstore.NewMemoryStore(), noop, nil

	case config.StoreFile:
		s, err := kvstore.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", cfg.Store.Dir).Msg("almacén en archivos")
		return s, noop, nil

	case config.StoreRedis:
		s := kvstore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("conexión a Redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("almacén en Redis")
		return s, func() { _ = s.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s := postgres.NewKVStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		log.Info().Msg("almacén en PostgreSQL")
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER %q no soportado", cfg.Store.Driver)
}
