package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
)

func TestProductRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	sup := "sup1"

	p := &entity.Product{ID: "p1", Code: "X1", Name: "Uno", CategoryID: "c1", SupplierID: &sup,
		PurchasePrice: decimal.NewFromInt(10), CurrentStock: 4}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.GetByCode(ctx, "X1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)
	assert.True(t, got.PurchasePrice.Equal(decimal.NewFromInt(10)))

	missing, err := repos.Products.GetByCode(ctx, "x1")
	require.NoError(t, err)
	assert.Nil(t, missing, "el código se compara de forma exacta")

	got.CurrentStock = 9
	require.NoError(t, repos.Products.Update(ctx, got))
	again, _ := repos.Products.GetByID(ctx, "p1")
	assert.Equal(t, 9, again.CurrentStock)

	n, err := repos.Products.CountByCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repos.Products.CountBySupplier(ctx, "sup1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repos.Products.Delete(ctx, "p1"))
	assert.ErrorIs(t, repos.Products.Delete(ctx, "p1"), domain.ErrNotFound)
	assert.ErrorIs(t, repos.Products.Update(ctx, got), domain.ErrNotFound)
}

func TestCategoryRepo_GetByNameSinMayusculas(t *testing.T) {
	ctx := context.Background()
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "c1", Name: "Electrónicos"}))

	got, err := repos.Categories.GetByName(ctx, "ELECTRÓNICOS")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ID)
}

func TestSupplierRepo_GetByNameSinMayusculas(t *testing.T) {
	ctx := context.Background()
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "ModaExpress", Contact: "María"}))

	got, err := repos.Suppliers.GetByName(ctx, "modaexpress")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
}

func TestMovementRepo_ExistsForProduct(t *testing.T) {
	ctx := context.Background()
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	require.NoError(t, repos.Movements.Create(ctx, &entity.Movement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: 1}))

	ok, err := repos.Movements.ExistsForProduct(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.Movements.ExistsForProduct(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repos.Movements.Delete(ctx, "m1"))
	m, err := repos.Movements.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestSessionRepo_SetClear(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repos := kvstore.NewRepos(store, "")

	u, err := repos.Session.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repos.Session.Set(ctx, &entity.User{ID: "1", Username: "admin"}))
	u, err = repos.Session.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.Username)

	require.NoError(t, repos.Session.Clear(ctx))
	raw, _ := store.Get(ctx, kvstore.KeyCurrentUser)
	assert.JSONEq(t, `[]`, string(raw), "la sesión vacía se guarda como arreglo vacío")
}

func TestRepos_Prefijo(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repos := kvstore.NewRepos(store, "inventory_")
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "c1", Name: "Ropa"}))

	raw, err := store.Get(ctx, "inventory_categories")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"Ropa"`)
}

func TestRepos_ColeccionCorrupta(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kvstore.KeyProducts, []byte(`{no es json`)))

	_, err := kvstore.NewRepos(store, "").Products.List(ctx)
	assert.Error(t, err)
}

func TestTxRunner_PasaRepositoriosYRespetaContexto(t *testing.T) {
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	runner := kvstore.NewTxRunner(repos.Inventory())

	called := false
	err := runner.Run(context.Background(), func(r repository.Repositories) error {
		called = true
		assert.NotNil(t, r.Products)
		assert.NotNil(t, r.Movements)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = runner.Run(ctx, func(repository.Repositories) error {
		t.Fatal("no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeed_SoloColeccionesVacias(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repos := kvstore.NewRepos(store, "")
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "mine", Name: "Propia"}))

	res, err := kvstore.Seed(ctx, store, "", kvstore.SeedConfig{AdminPassword: "123456", UserPassword: "123456"}, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, res.Seeded, kvstore.KeyCategories)
	assert.Contains(t, res.Seeded, kvstore.KeyProducts)

	cats, _ := repos.Categories.List(ctx)
	assert.Len(t, cats, 1, "una colección con datos no se sobreescribe")

	admin, err := repos.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("123456")))

	p, _ := repos.Products.GetByID(ctx, "prod1")
	movs, _ := repos.Movements.List(ctx)
	sum := 0
	for _, m := range movs {
		if m.ProductID == "prod1" {
			sum += m.SignedQuantity()
		}
	}
	assert.Equal(t, p.CurrentStock, sum, "el stock sembrado coincide con sus movimientos")
}

func TestProductRepo_PreciosSePersistenComoNumeros(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repos := kvstore.NewRepos(store, "")

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Code: "X1", Name: "Uno", CategoryID: "c1",
		PurchasePrice: decimal.RequireFromString("12.5"), SalePrice: decimal.NewFromInt(20)}))

	raw, err := store.Get(ctx, kvstore.KeyProducts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"purchasePrice":12.5`)
	assert.Contains(t, string(raw), `"salePrice":20`)
	assert.NotContains(t, string(raw), `"purchasePrice":"`)

	got, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, got.PurchasePrice.Equal(decimal.RequireFromString("12.5")))
}

func TestProductRepo_LeePreciosComoCadena(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kvstore.KeyProducts,
		[]byte(`[{"id":"p1","code":"X1","purchasePrice":"300.5","salePrice":450,"currentStock":2}]`)))

	got, err := kvstore.NewRepos(store, "").Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.PurchasePrice.Equal(decimal.RequireFromString("300.5")))
	assert.True(t, got.SalePrice.Equal(decimal.NewFromInt(450)))
}
