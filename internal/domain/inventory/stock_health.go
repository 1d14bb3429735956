package inventory

// StockStatus clasifica el nivel de stock de un producto.
type StockStatus string

// Estados de stock. Los tres particionan cualquier conjunto de productos.
const (
	StatusOutOfStock StockStatus = "OUT_OF_STOCK" // currentStock <= 0
	StatusLowStock   StockStatus = "LOW_STOCK"    // 0 < currentStock <= minStock
	StatusOK         StockStatus = "OK"           // currentStock > minStock
)

// ClassifyStock devuelve el estado de stock.
// Un stock negativo (posible tras revertir una entrada) cuenta como sin stock para que la
// partición siga siendo exhaustiva.
func ClassifyStock(currentStock, minStock int) StockStatus {
	switch {
	case currentStock <= 0:
		return StatusOutOfStock
	case currentStock <= minStock:
		return StatusLowStock
	default:
		return StatusOK
	}
}

// NeedsRestock indica si el producto aparece en el listado de stock bajo (currentStock <= minStock),
// que incluye los productos sin stock.
func NeedsRestock(currentStock, minStock int) bool {
	return currentStock <= minStock
}

// CanApply indica si aplicar delta deja el stock no negativo.
func CanApply(currentStock, delta int) bool {
	return currentStock+delta >= 0
}
