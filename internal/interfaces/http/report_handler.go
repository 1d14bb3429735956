package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
)

// ReportHandler endpoints de solo lectura: dashboard, reportes y exportación.
type ReportHandler struct {
	uc *reporting.ReportingUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportingUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard GET /api/reports/dashboard
//
// Totales del catálogo, valor del inventario, movimientos de hoy y los 10 más recientes.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stock GET /api/reports/stock
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories GET /api/reports/categories
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	items, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// LowStock GET /api/reports/low-stock
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Export GET /api/reports/export descarga el documento JSON.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	doc, err := h.uc.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(h.uc.ExportFilename("json"))
	return c.JSON(doc)
}

// ExportPDF GET /api/reports/export/pdf
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(h.uc.ExportFilename("pdf"))
	return c.Send(pdf)
}
