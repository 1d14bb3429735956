package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// CurrentStock solo cambia vía movimientos (Catalog.AdjustStock); es la suma del stock inicial
// más las cantidades con signo de los movimientos aplicados.
type Product struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"` // único, comparación exacta
	Name          string          `json:"name"`
	CategoryID    string          `json:"categoryId"`
	SupplierID    *string         `json:"supplierId,omitempty"` // opcional
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	CurrentStock  int             `json:"currentStock"`
	MinStock      int             `json:"minStock"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DefaultMarkup margen del precio de venta sugerido (30%).
var DefaultMarkup = decimal.RequireFromString("1.3")

// SuggestedSalePrice precio de compra × DefaultMarkup, redondeado a 2 decimales.
func SuggestedSalePrice(purchasePrice decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(DefaultMarkup).Round(2)
}

// StockValue devuelve currentStock × purchasePrice.
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

// HasSupplier indica si el producto referencia a supplierID.
func (p *Product) HasSupplier(supplierID string) bool {
	return p.SupplierID != nil && *p.SupplierID == supplierID
}
