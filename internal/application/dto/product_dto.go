package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// CreateProductRequest entrada para crear un producto. CurrentStock es el stock inicial.
type CreateProductRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"categoryId"`
	SupplierID    *string         `json:"supplierId"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	CurrentStock  int             `json:"currentStock"`
	MinStock      int             `json:"minStock"`
	Description   string          `json:"description"`
}

// UpdateProductRequest merge parcial. El stock no se edita aquí, solo vía movimientos.
// ClearSupplier quita el proveedor (SupplierID nil solo significa "sin cambios").
type UpdateProductRequest struct {
	Code          *string          `json:"code"`
	Name          *string          `json:"name"`
	CategoryID    *string          `json:"categoryId"`
	SupplierID    *string          `json:"supplierId"`
	ClearSupplier bool             `json:"clearSupplier"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	MinStock      *int             `json:"minStock"`
	Description   *string          `json:"description"`
}

// Filtros de stock para la búsqueda de productos.
const (
	StockFilterLow = "low"
	StockFilterOut = "out"
)

// ProductFilter criterios de búsqueda; vacíos no filtran.
type ProductFilter struct {
	Term       string `query:"q"`
	CategoryID string `query:"categoryId"`
	Stock      string `query:"stock"` // low | out
}

// ProductResponse producto con su estado de stock.
type ProductResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	CategoryID    string                `json:"categoryId"`
	SupplierID    *string               `json:"supplierId,omitempty"`
	PurchasePrice decimal.Decimal       `json:"purchasePrice"`
	SalePrice     decimal.Decimal       `json:"salePrice"`
	CurrentStock  int                   `json:"currentStock"`
	MinStock      int                   `json:"minStock"`
	Description   string                `json:"description,omitempty"`
	Status        inventory.StockStatus `json:"status"`
	StockValue    decimal.Decimal       `json:"stockValue"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewProductResponse arma la respuesta a partir de la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		CurrentStock:  p.CurrentStock,
		MinStock:      p.MinStock,
		Description:   p.Description,
		Status:        inventory.ClassifyStock(p.CurrentStock, p.MinStock),
		StockValue:    p.StockValue(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewProductResponses convierte una lista.
func NewProductResponses(ps []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductResponse(p))
	}
	return out
}
