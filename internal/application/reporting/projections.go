// Package reporting deriva vistas de solo lectura sobre el catálogo y el ledger.
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// Nombres usados cuando una referencia no resuelve.
const (
	NoCategoryName     = "Sin categoría"
	UnknownProductName = "Desconocido"
)

// Valuation Σ currentStock × purchasePrice.
func Valuation(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total
}

// HealthPartition reparte los productos en sin stock, stock bajo y sanos, sin solapamiento.
type HealthPartition struct {
	OutOfStock []*entity.Product
	LowStock   []*entity.Product
	Healthy    []*entity.Product
}

// Partition clasifica cada producto en exactamente un grupo.
func Partition(products []*entity.Product) HealthPartition {
	var hp HealthPartition
	for _, p := range products {
		switch inventory.ClassifyStock(p.CurrentStock, p.MinStock) {
		case inventory.StatusOutOfStock:
			hp.OutOfStock = append(hp.OutOfStock, p)
		case inventory.StatusLowStock:
			hp.LowStock = append(hp.LowStock, p)
		default:
			hp.Healthy = append(hp.Healthy, p)
		}
	}
	return hp
}

// CategoryBreakdown por categoría con productos: cantidad, valor y productos en stock bajo.
// Ordenado por valor descendente; a igual valor se conserva el orden de las categorías.
func CategoryBreakdown(products []*entity.Product, categories []*entity.Category) []dto.CategoryBreakdownItem {
	byCat := make(map[string][]*entity.Product)
	for _, p := range products {
		byCat[p.CategoryID] = append(byCat[p.CategoryID], p)
	}
	out := make([]dto.CategoryBreakdownItem, 0, len(categories))
	for _, c := range categories {
		ps := byCat[c.ID]
		if len(ps) == 0 {
			continue
		}
		item := dto.CategoryBreakdownItem{
			CategoryID:   c.ID,
			Category:     c.Name,
			ProductCount: len(ps),
			StockValue:   Valuation(ps),
		}
		for _, p := range ps {
			if inventory.NeedsRestock(p.CurrentStock, p.MinStock) {
				item.LowStockCount++
			}
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StockValue.GreaterThan(out[j].StockValue)
	})
	return out
}

// LowStock productos con currentStock <= minStock (incluye sin stock), de menor a mayor stock.
func LowStock(products []*entity.Product, categories []*entity.Category) []dto.LowStockItem {
	names := categoryNames(categories)
	out := make([]dto.LowStockItem, 0)
	for _, p := range products {
		if !inventory.NeedsRestock(p.CurrentStock, p.MinStock) {
			continue
		}
		out = append(out, dto.LowStockItem{
			ProductID:    p.ID,
			Name:         p.Name,
			Code:         p.Code,
			Category:     nameOr(names, p.CategoryID, NoCategoryName),
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Difference:   p.MinStock - p.CurrentStock,
			Status:       inventory.ClassifyStock(p.CurrentStock, p.MinStock),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentStock < out[j].CurrentStock
	})
	return out
}

func categoryNames(categories []*entity.Category) map[string]string {
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Name
	}
	return m
}

func productNames(products []*entity.Product) map[string]string {
	m := make(map[string]string, len(products))
	for _, p := range products {
		m[p.ID] = p.Name
	}
	return m
}

func nameOr(names map[string]string, id, fallback string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fallback
}
