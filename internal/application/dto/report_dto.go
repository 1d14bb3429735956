package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// DashboardDTO indicadores del panel principal.
type DashboardDTO struct {
	TotalProducts   int             `json:"totalProducts"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	TodayEntries    int             `json:"todayEntries"`
	TodayExits      int             `json:"todayExits"`
	InventoryValue  decimal.Decimal `json:"inventoryValue"`
	RecentMovements []MovementRow   `json:"recentMovements"`
}

// StockReportDTO valorización y partición de salud del stock.
type StockReportDTO struct {
	TotalProducts  int             `json:"totalProducts"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	OutOfStock     int             `json:"outOfStock"`
	LowStock       int             `json:"lowStock"`
	Healthy        int             `json:"healthy"`
}

// CategoryBreakdownItem fila del reporte por categorías.
type CategoryBreakdownItem struct {
	CategoryID    string          `json:"categoryId"`
	Category      string          `json:"category"`
	ProductCount  int             `json:"productCount"`
	StockValue    decimal.Decimal `json:"stockValue"`
	LowStockCount int             `json:"lowStockCount"`
}

// LowStockItem fila del listado de stock bajo.
type LowStockItem struct {
	ProductID    string                `json:"productId"`
	Name         string                `json:"name"`
	Code         string                `json:"code"`
	Category     string                `json:"category"`
	CurrentStock int                   `json:"currentStock"`
	MinStock     int                   `json:"minStock"`
	Difference   int                   `json:"difference"` // minStock - currentStock
	Status       inventory.StockStatus `json:"status"`
}

// MovementRow movimiento con el nombre del producto resuelto.
type MovementRow struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Product   string `json:"product"`
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	UserID    string `json:"userId,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ExportDocument documento exportado del inventario. Los nombres de campos son un contrato
// con herramientas externas: no renombrar.
type ExportDocument struct {
	Date            string           `json:"date"`
	Summary         ExportSummary    `json:"summary"`
	Products        []ExportProduct  `json:"products"`
	RecentMovements []ExportMovement `json:"recentMovements"`
	Categories      []ExportCategory `json:"categories"`
}

// ExportSummary resumen del documento exportado.
type ExportSummary struct {
	TotalProducts       int     `json:"totalProducts"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
	LowStockCount       int     `json:"lowStockCount"`
	OutOfStockCount     int     `json:"outOfStockCount"`
	TodayMovementCount  int     `json:"todayMovementCount"`
}

// ExportProduct producto en el documento exportado.
type ExportProduct struct {
	Name          string                `json:"name"`
	Code          string                `json:"code"`
	Category      string                `json:"category"`
	CurrentStock  int                   `json:"currentStock"`
	MinStock      int                   `json:"minStock"`
	PurchasePrice float64               `json:"purchasePrice"`
	SalePrice     float64               `json:"salePrice"`
	Status        inventory.StockStatus `json:"status"`
}

// ExportMovement movimiento en el documento exportado.
type ExportMovement struct {
	Date     string `json:"date"`
	Product  string `json:"product"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// ExportCategory categoría en el documento exportado.
type ExportCategory struct {
	Name         string  `json:"name"`
	ProductCount int     `json:"productCount"`
	StockValue   float64 `json:"stockValue"`
}
