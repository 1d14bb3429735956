package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStore()

	if cfg.Seed.OnStart {
		res, err := kvstore.Seed(ctx, store, cfg.Store.KeyPrefix, kvstore.SeedConfig{
			AdminPassword: cfg.Seed.AdminPassword,
			UserPassword:  cfg.Seed.UserPassword,
		}, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("datos de demostración")
		}
		log.Info().Strs("colecciones", res.Seeded).Msg("datos de demostración cargados")
	}

	repos := kvstore.NewRepos(store, cfg.Store.KeyPrefix)
	txRunner := kvstore.NewTxRunner(repos.Inventory())

	authUC := auth.NewAuthUseCase(repos.Users, repos.Session, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	catalogUC := catalog.NewCatalogUseCase(txRunner, repos.Inventory(), authUC, log)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, repos.Movements, catalogUC, authUC, log,
		inventory.WithLocation(loc))

	// PDF: reporte de inventario exportable
	pdfGenerator := infrapdf.NewInventoryReportGenerator(cfg.App.Name)
	reportingUC := reporting.NewReportingUseCase(repos.Products, repos.Categories, repos.Movements,
		pdfGenerator, reporting.Config{
			RecentMovements: cfg.Report.RecentMovements,
			Location:        loc,
		})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		LedgerUC:    ledgerUC,
		ReportingUC: reportingUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
