package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/kvstore"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// stubAccess simula la sesión: user nil = sin sesión.
type stubAccess struct{ user *entity.User }

func (s stubAccess) CurrentUser(context.Context) (*entity.User, error) { return s.user, nil }

func (s stubAccess) RequireAdmin(context.Context) (*entity.User, error) {
	if s.user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !s.user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.user, nil
}

var admin = &entity.User{ID: "1", Username: "admin", Role: entity.RoleAdmin, Active: true}

type fixture struct {
	uc    *catalog.CatalogUseCase
	repos *kvstore.Repos
	ctx   context.Context
}

func newFixture(t *testing.T, user *entity.User) *fixture {
	t.Helper()
	repos := kvstore.NewRepos(kvstore.NewMemoryStore(), "")
	clock := func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	uc := catalog.NewCatalogUseCase(kvstore.NewTxRunner(repos.Inventory()), repos.Inventory(),
		stubAccess{user: user}, logger.Nop(), catalog.WithClock(clock))
	return &fixture{uc: uc, repos: repos, ctx: context.Background()}
}

func (f *fixture) category(t *testing.T, name string) *entity.Category {
	t.Helper()
	c, err := f.uc.CreateCategory(f.ctx, dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, code, categoryID string, stock, min int) *entity.Product {
	t.Helper()
	p, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, CategoryID: categoryID,
		PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15),
		CurrentStock: stock, MinStock: min,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_CodigoDuplicadoExacto(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")

	f.product(t, "X1", c.ID, 1, 0)
	_, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "X1", Name: "Otro", CategoryID: c.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	p, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "x1", Name: "Otro", CategoryID: c.ID})
	require.NoError(t, err, "el código distingue mayúsculas")
	assert.Equal(t, "x1", p.Code)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")

	cases := []struct {
		name  string
		in    dto.CreateProductRequest
		field string
	}{
		{"sin código", dto.CreateProductRequest{Name: "A", CategoryID: c.ID}, "code"},
		{"sin nombre", dto.CreateProductRequest{Code: "A", CategoryID: c.ID}, "name"},
		{"sin categoría", dto.CreateProductRequest{Code: "A", Name: "A"}, "categoryId"},
		{"categoría inexistente", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: "nope"}, "categoryId"},
		{"proveedor inexistente", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, SupplierID: ptr("nope")}, "supplierId"},
		{"precio negativo", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, PurchasePrice: decimal.NewFromInt(-1)}, "purchasePrice"},
		{"venta negativa", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, SalePrice: decimal.NewFromInt(-1)}, "salePrice"},
		{"stock negativo", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, CurrentStock: -1}, "currentStock"},
		{"mínimo negativo", dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, MinStock: -1}, "minStock"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(f.ctx, tc.in)
			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidField)
		})
	}

	all, _ := f.uc.ListProducts(f.ctx)
	assert.Empty(t, all, "ningún producto inválido se persiste")
}

func TestCreateProduct_ProveedorVacioEsNulo(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	p, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, SupplierID: ptr("  ")})
	require.NoError(t, err)
	assert.Nil(t, p.SupplierID)
}

func TestCreateProduct_PrecioVentaSugerido(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")

	p, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID,
		PurchasePrice: decimal.RequireFromString("12.35")})
	require.NoError(t, err)
	assert.Equal(t, "16.06", p.SalePrice.StringFixed(2), "12.35 × 1.3 redondeado a 2 decimales")

	p, err = f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "B", Name: "B", CategoryID: c.ID,
		PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(11)})
	require.NoError(t, err)
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(11)), "un precio de venta dado se respeta")

	p, err = f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "C", Name: "C", CategoryID: c.ID})
	require.NoError(t, err)
	assert.True(t, p.SalePrice.IsZero(), "sin precio de compra no hay sugerencia")
}

func TestUpdateProduct_MergeParcial(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	p := f.product(t, "A1", c.ID, 7, 2)

	got, err := f.uc.UpdateProduct(f.ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Nuevo"), MinStock: ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", got.Name)
	assert.Equal(t, "A1", got.Code)
	assert.Equal(t, 9, got.MinStock)
	assert.Equal(t, 7, got.CurrentStock, "el stock no cambia en una edición")

	_, err = f.uc.UpdateProduct(f.ctx, p.ID, dto.UpdateProductRequest{PurchasePrice: ptr(decimal.NewFromInt(-5))})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	stored, _ := f.uc.GetProduct(f.ctx, p.ID)
	assert.True(t, stored.PurchasePrice.Equal(decimal.NewFromInt(10)), "un merge inválido no se persiste")

	_, err = f.uc.UpdateProduct(f.ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProduct_CambioDeCodigoDuplicado(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	f.product(t, "A1", c.ID, 0, 0)
	p2 := f.product(t, "A2", c.ID, 0, 0)

	_, err := f.uc.UpdateProduct(f.ctx, p2.ID, dto.UpdateProductRequest{Code: ptr("A1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = f.uc.UpdateProduct(f.ctx, p2.ID, dto.UpdateProductRequest{Code: ptr("A2")})
	assert.NoError(t, err, "conservar el propio código no es duplicado")
}

func TestUpdateProduct_QuitarProveedor(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	s, err := f.uc.CreateSupplier(f.ctx, dto.CreateSupplierRequest{Name: "S", Contact: "C"})
	require.NoError(t, err)
	p, err := f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, SupplierID: &s.ID})
	require.NoError(t, err)
	require.NotNil(t, p.SupplierID)

	got, err := f.uc.UpdateProduct(f.ctx, p.ID, dto.UpdateProductRequest{ClearSupplier: true})
	require.NoError(t, err)
	assert.Nil(t, got.SupplierID)
}

func TestDeleteProduct_ConMovimientos(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	p := f.product(t, "A1", c.ID, 5, 0)
	require.NoError(t, f.repos.Movements.Create(f.ctx, &entity.Movement{ID: "m1", ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 1}))

	assert.ErrorIs(t, f.uc.DeleteProduct(f.ctx, p.ID), domain.ErrHasDependentMovements)

	require.NoError(t, f.repos.Movements.Delete(f.ctx, "m1"))
	require.NoError(t, f.uc.DeleteProduct(f.ctx, p.ID))
	_, err := f.uc.GetProduct(f.ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.DeleteProduct(f.ctx, p.ID), domain.ErrNotFound)
}

func TestDeletes_SoloAdmin(t *testing.T) {
	f := newFixture(t, &entity.User{ID: "2", Role: entity.RoleUser})
	c := f.category(t, "Hogar")
	p := f.product(t, "A1", c.ID, 0, 0)

	assert.ErrorIs(t, f.uc.DeleteProduct(f.ctx, p.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.DeleteCategory(f.ctx, c.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.DeleteSupplier(f.ctx, "x"), domain.ErrForbidden)

	anon := newFixture(t, nil)
	assert.ErrorIs(t, anon.uc.DeleteProduct(anon.ctx, "x"), domain.ErrUnauthorized)
}

func TestSearchProducts(t *testing.T) {
	f := newFixture(t, admin)
	c1 := f.category(t, "Electrónicos")
	c2 := f.category(t, "Ropa")
	f.product(t, "LAP-1", c1.ID, 15, 5)
	f.product(t, "TEL-1", c1.ID, 3, 10)
	f.product(t, "CAM-1", c2.ID, 0, 2)

	byTerm, err := f.uc.SearchProducts(f.ctx, dto.ProductFilter{Term: "lap"})
	require.NoError(t, err)
	require.Len(t, byTerm, 1)
	assert.Equal(t, "LAP-1", byTerm[0].Code)

	byCat, _ := f.uc.SearchProducts(f.ctx, dto.ProductFilter{CategoryID: c1.ID})
	assert.Len(t, byCat, 2)

	low, _ := f.uc.SearchProducts(f.ctx, dto.ProductFilter{Stock: dto.StockFilterLow})
	require.Len(t, low, 1)
	assert.Equal(t, "TEL-1", low[0].Code)

	out, _ := f.uc.SearchProducts(f.ctx, dto.ProductFilter{Stock: dto.StockFilterOut})
	require.Len(t, out, 1)
	assert.Equal(t, "CAM-1", out[0].Code)

	_, err = f.uc.SearchProducts(f.ctx, dto.ProductFilter{Stock: "raro"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")
	p := f.product(t, "A1", c.ID, 10, 5)

	got, err := f.uc.AdjustStock(f.ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentStock)

	_, err = f.uc.AdjustStock(f.ctx, p.ID, -8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	stored, _ := f.uc.GetProduct(f.ctx, p.ID)
	assert.Equal(t, 7, stored.CurrentStock, "un ajuste rechazado no modifica el stock")

	got, err = f.uc.AdjustStock(f.ctx, p.ID, -7)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStock, "llegar exactamente a cero está permitido")

	_, err = f.uc.AdjustStock(f.ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreUnicoSinMayusculas(t *testing.T) {
	f := newFixture(t, admin)
	f.category(t, "Ropa")

	_, err := f.uc.CreateCategory(f.ctx, dto.CreateCategoryRequest{Name: "  ROPA "})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	_, err = f.uc.CreateCategory(f.ctx, dto.CreateCategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestUpdateCategory_Renombrar(t *testing.T) {
	f := newFixture(t, admin)
	a := f.category(t, "Ropa")
	f.category(t, "Hogar")

	_, err := f.uc.UpdateCategory(f.ctx, a.ID, dto.UpdateCategoryRequest{Name: ptr("hogar")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	got, err := f.uc.UpdateCategory(f.ctx, a.ID, dto.UpdateCategoryRequest{Name: ptr("ROPA"), Description: ptr("Prendas")})
	require.NoError(t, err, "cambiar solo mayúsculas del propio nombre es válido")
	assert.Equal(t, "ROPA", got.Name)
	assert.Equal(t, "Prendas", got.Description)

	_, err = f.uc.UpdateCategory(f.ctx, "nope", dto.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCategory_ConProductosYReasignacion(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "C")
	other := f.category(t, "Otra")
	p1 := f.product(t, "P1", c.ID, 0, 0)
	p2 := f.product(t, "P2", c.ID, 0, 0)

	assert.ErrorIs(t, f.uc.DeleteCategory(f.ctx, c.ID), domain.ErrHasDependentProducts)

	for _, p := range []*entity.Product{p1, p2} {
		_, err := f.uc.UpdateProduct(f.ctx, p.ID, dto.UpdateProductRequest{CategoryID: &other.ID})
		require.NoError(t, err)
	}
	require.NoError(t, f.uc.DeleteCategory(f.ctx, c.ID))

	_, err := f.uc.GetCategory(f.ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCategories_ConConteo(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Electrónicos")
	f.category(t, "Vacía")
	f.product(t, "P1", c.ID, 0, 0)

	list, err := f.uc.ListCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ProductCount)
	assert.Equal(t, 0, list[1].ProductCount)

	found, _ := f.uc.SearchCategories(f.ctx, "ELECTR")
	require.Len(t, found, 1)
	assert.Equal(t, c.ID, found[0].ID)
}

func TestSupplier_CRUD(t *testing.T) {
	f := newFixture(t, admin)
	c := f.category(t, "Hogar")

	_, err := f.uc.CreateSupplier(f.ctx, dto.CreateSupplierRequest{Name: "S"})
	assert.ErrorIs(t, err, domain.ErrInvalidField, "contacto requerido")
	_, err = f.uc.CreateSupplier(f.ctx, dto.CreateSupplierRequest{Name: "S", Contact: "C", Email: "malo"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	s, err := f.uc.CreateSupplier(f.ctx, dto.CreateSupplierRequest{Name: "ModaExpress", Contact: "María", Email: "maria@moda.com"})
	require.NoError(t, err)
	_, err = f.uc.CreateSupplier(f.ctx, dto.CreateSupplierRequest{Name: "modaexpress", Contact: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	got, err := f.uc.UpdateSupplier(f.ctx, s.ID, dto.UpdateSupplierRequest{Phone: ptr("+57 300")})
	require.NoError(t, err)
	assert.Equal(t, "+57 300", got.Phone)
	assert.Equal(t, "María", got.Contact)

	_, err = f.uc.CreateProduct(f.ctx, dto.CreateProductRequest{Code: "A", Name: "A", CategoryID: c.ID, SupplierID: &s.ID})
	require.NoError(t, err)

	withCount, err := f.uc.GetSupplier(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, withCount.ProductCount)

	assert.ErrorIs(t, f.uc.DeleteSupplier(f.ctx, s.ID), domain.ErrHasDependentProducts)

	found, _ := f.uc.SearchSuppliers(f.ctx, "maría")
	assert.Len(t, found, 1)
}
