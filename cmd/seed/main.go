// seed carga los datos de demostración (categorías, proveedores, productos, movimientos y
// usuarios admin/user) en las colecciones vacías del almacén configurado.
//
// Uso: go run ./cmd/seed
// Respeta STORE_DRIVER, STORE_KEY_PREFIX y SEED_ADMIN_PASSWORD / SEED_USER_PASSWORD.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStore()

	res, err := kvstore.Seed(ctx, store, cfg.Store.KeyPrefix, kvstore.SeedConfig{
		AdminPassword: cfg.Seed.AdminPassword,
		UserPassword:  cfg.Seed.UserPassword,
	}, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar datos")
	}
	if len(res.Seeded) == 0 {
		log.Info().Msg("todas las colecciones tenían datos; nada que sembrar")
	} else {
		log.Info().Strs("colecciones", res.Seeded).Msg("datos de demostración cargados")
	}

	products, err := kvstore.NewProductRepository(store, cfg.Store.KeyPrefix).List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("leer productos")
	}
	value := reporting.Valuation(products)
	ev := log.Info().Int("productos", len(products)).Str("valor", value.StringFixed(2))

	// En PostgreSQL se concilia con la valorización calculada por la base.
	if pg, ok := store.(*postgres.KVStore); ok {
		dbValue, err := pg.StockValuation(ctx, cfg.Store.KeyPrefix+kvstore.KeyProducts)
		if err != nil {
			log.Fatal().Err(err).Msg("valorizar en base")
		}
		ev = ev.Str("valorBase", dbValue.StringFixed(2))
		if !dbValue.Equal(value) {
			log.Warn().Str("valor", value.String()).Str("valorBase", dbValue.String()).Msg("la valorización no concilia")
		}
	}
	ev.Msg("inventario")
}
