package reporting

import "github.com/jhoicas/inventario-ledger/internal/application/dto"

// InventoryPDFGenerator puerto para renderizar el documento exportado como PDF.
type InventoryPDFGenerator interface {
	GenerateInventoryReport(doc *dto.ExportDocument) ([]byte, error)
}
