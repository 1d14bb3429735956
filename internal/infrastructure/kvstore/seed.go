package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SeedConfig contraseñas de los usuarios iniciales.
type SeedConfig struct {
	AdminPassword string
	UserPassword  string
}

// SeedResult indica qué colecciones se inicializaron.
type SeedResult struct {
	Seeded []string
}

// Seed carga el conjunto de datos de demostración en las colecciones que estén vacías.
// Las colecciones con datos no se tocan.
func Seed(ctx context.Context, store Store, prefix string, cfg SeedConfig, now time.Time) (*SeedResult, error) {
	users, err := seedUsers(cfg, now)
	if err != nil {
		return nil, err
	}
	res := &SeedResult{}

	steps := []struct {
		name string
		run  func() (bool, error)
	}{
		{KeyUsers, func() (bool, error) {
			return seedIfEmpty(ctx, newCollection[entity.User](store, prefix, KeyUsers), users)
		}},
		{KeyCategories, func() (bool, error) {
			return seedIfEmpty(ctx, newCollection[entity.Category](store, prefix, KeyCategories), seedCategories(now))
		}},
		{KeySuppliers, func() (bool, error) {
			return seedIfEmpty(ctx, newCollection[entity.Supplier](store, prefix, KeySuppliers), seedSuppliers(now))
		}},
		{KeyProducts, func() (bool, error) {
			return seedIfEmpty(ctx, newCollection[productRecord](store, prefix, KeyProducts), productRecords(seedProducts(now)))
		}},
		{KeyMovements, func() (bool, error) {
			return seedIfEmpty(ctx, newCollection[entity.Movement](store, prefix, KeyMovements), seedMovements(now))
		}},
	}
	for _, s := range steps {
		done, err := s.run()
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.name, err)
		}
		if done {
			res.Seeded = append(res.Seeded, s.name)
		}
	}
	return res, nil
}

func seedIfEmpty[T any](ctx context.Context, c collection[T], items []T) (bool, error) {
	existing, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, c.save(ctx, items)
}

func seedUsers(cfg SeedConfig, now time.Time) ([]entity.User, error) {
	users := []entity.User{
		{ID: "1", Username: "admin", Name: "Administrador", Role: entity.RoleAdmin, Email: "admin@inventario.com", Active: true, CreatedAt: now},
		{ID: "2", Username: "user", Name: "Usuario General", Role: entity.RoleUser, Email: "user@inventario.com", Active: true, CreatedAt: now},
	}
	passwords := []string{cfg.AdminPassword, cfg.UserPassword}
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(passwords[i]), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash de %s: %w", users[i].Username, err)
		}
		users[i].PasswordHash = string(hash)
	}
	return users, nil
}

func seedCategories(now time.Time) []entity.Category {
	return []entity.Category{
		{ID: "cat1", Name: "Electrónicos", Description: "Productos electrónicos", CreatedAt: now, UpdatedAt: now},
		{ID: "cat2", Name: "Ropa", Description: "Prendas de vestir", CreatedAt: now, UpdatedAt: now},
		{ID: "cat3", Name: "Hogar", Description: "Artículos para el hogar", CreatedAt: now, UpdatedAt: now},
		{ID: "cat4", Name: "Deportes", Description: "Artículos deportivos", CreatedAt: now, UpdatedAt: now},
	}
}

func seedSuppliers(now time.Time) []entity.Supplier {
	return []entity.Supplier{
		{ID: "sup1", Name: "TecnoSupply S.A.", Contact: "Juan Pérez", Email: "juan@tecnosupply.com", Phone: "+1234567890", Address: "Av. Tecnología 123", CreatedAt: now, UpdatedAt: now},
		{ID: "sup2", Name: "ModaExpress", Contact: "María García", Email: "maria@modaexpress.com", Phone: "+0987654321", Address: "Calle Moda 456", CreatedAt: now, UpdatedAt: now},
	}
}

func seedProducts(now time.Time) []entity.Product {
	sup1, sup2 := "sup1", "sup2"
	return []entity.Product{
		{ID: "prod1", Code: "PROD001", Name: "Laptop Gamer", CategoryID: "cat1", SupplierID: &sup1,
			PurchasePrice: decimal.NewFromInt(800), SalePrice: decimal.NewFromInt(1200),
			CurrentStock: 15, MinStock: 5, Description: "Laptop para gaming de alta gama", CreatedAt: now, UpdatedAt: now},
		{ID: "prod2", Code: "PROD002", Name: "Smartphone Android", CategoryID: "cat1", SupplierID: &sup1,
			PurchasePrice: decimal.NewFromInt(300), SalePrice: decimal.NewFromInt(450),
			CurrentStock: 3, MinStock: 10, Description: "Teléfono inteligente Android", CreatedAt: now, UpdatedAt: now},
		{ID: "prod3", Code: "PROD003", Name: "Camiseta Deportiva", CategoryID: "cat2", SupplierID: &sup2,
			PurchasePrice: decimal.NewFromInt(15), SalePrice: decimal.NewFromInt(25),
			CurrentStock: 50, MinStock: 20, Description: "Camiseta para actividades deportivas", CreatedAt: now, UpdatedAt: now},
	}
}

// seedMovements: prod1 = 0 + 20 - 5 = 15, coherente con su stock sembrado.
func seedMovements(now time.Time) []entity.Movement {
	return []entity.Movement{
		{ID: "mov1", ProductID: "prod1", Type: entity.MovementTypeEntry, Quantity: 20, Reason: entity.ReasonPurchase, Date: now, UserID: "1", Notes: "Compra inicial"},
		{ID: "mov2", ProductID: "prod1", Type: entity.MovementTypeExit, Quantity: 5, Reason: entity.ReasonSale, Date: now.Add(-24 * time.Hour), UserID: "1", Notes: "Venta a cliente"},
	}
}
