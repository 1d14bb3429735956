package reporting_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func prod(id, cat string, stock, min int, price int64) *entity.Product {
	return &entity.Product{ID: id, Name: "Prod " + id, Code: id, CategoryID: cat, CurrentStock: stock, MinStock: min,
		PurchasePrice: decimal.NewFromInt(price)}
}

func TestValuation(t *testing.T) {
	ps := []*entity.Product{prod("a", "c", 15, 5, 800), prod("b", "c", 3, 10, 300), prod("c", "c", 0, 1, 99)}
	assert.True(t, reporting.Valuation(ps).Equal(decimal.NewFromInt(12900)))
	assert.True(t, reporting.Valuation(nil).IsZero())
}

func TestPartition_ExhaustivaYDisjunta(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		ps := make([]*entity.Product, 0, n)
		for i := 0; i < n; i++ {
			ps = append(ps, prod(string(rune('a'+i)), "c", rng.Intn(12)-2, rng.Intn(6), 1))
		}
		hp := reporting.Partition(ps)
		assert.Equal(t, len(ps), len(hp.OutOfStock)+len(hp.LowStock)+len(hp.Healthy))

		seen := map[*entity.Product]int{}
		for _, group := range [][]*entity.Product{hp.OutOfStock, hp.LowStock, hp.Healthy} {
			for _, p := range group {
				seen[p]++
			}
		}
		for _, p := range ps {
			assert.Equal(t, 1, seen[p], "cada producto pertenece a un solo grupo")
		}
	}
}

func TestPartition_Bordes(t *testing.T) {
	hp := reporting.Partition([]*entity.Product{
		prod("cero", "c", 0, 5, 1),
		prod("igual", "c", 5, 5, 1),
		prod("arriba", "c", 6, 5, 1),
		prod("minCero", "c", 0, 0, 1),
	})
	require.Len(t, hp.OutOfStock, 2)
	require.Len(t, hp.LowStock, 1)
	assert.Equal(t, "igual", hp.LowStock[0].ID)
	require.Len(t, hp.Healthy, 1)
	assert.Equal(t, "arriba", hp.Healthy[0].ID)
}

func TestCategoryBreakdown(t *testing.T) {
	cats := []*entity.Category{{ID: "ropa", Name: "Ropa"}, {ID: "vacia", Name: "Vacía"}, {ID: "elec", Name: "Electrónicos"}}
	ps := []*entity.Product{
		prod("p1", "elec", 15, 5, 800),
		prod("p2", "elec", 3, 10, 300),
		prod("p3", "ropa", 50, 20, 15),
		prod("p4", "elec", 0, 2, 10),
	}
	got := reporting.CategoryBreakdown(ps, cats)
	require.Len(t, got, 2, "las categorías sin productos se excluyen")

	assert.Equal(t, "Electrónicos", got[0].Category)
	assert.Equal(t, 3, got[0].ProductCount)
	assert.True(t, got[0].StockValue.Equal(decimal.NewFromInt(12900)))
	assert.Equal(t, 2, got[0].LowStockCount, "cuenta también los productos sin stock")

	assert.Equal(t, "Ropa", got[1].Category)
	assert.True(t, got[1].StockValue.Equal(decimal.NewFromInt(750)))
}

func TestLowStock_OrdenAscendente(t *testing.T) {
	cats := []*entity.Category{{ID: "c", Name: "Cat"}}
	ps := []*entity.Product{
		prod("a", "c", 4, 4, 1),
		prod("b", "c", 10, 4, 1),
		prod("c", "c", 0, 3, 1),
		prod("d", "huérfana", 2, 3, 1),
	}
	got := reporting.LowStock(ps, cats)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "d", "a"}, []string{got[0].ProductID, got[1].ProductID, got[2].ProductID})
	assert.Equal(t, inventory.StatusOutOfStock, got[0].Status)
	assert.Equal(t, 3, got[0].Difference)
	assert.Equal(t, reporting.NoCategoryName, got[1].Category)
}
