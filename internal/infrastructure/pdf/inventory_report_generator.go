// Package pdf renderiza el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación      │  QR resumen     │
//	│  RESUMEN: productos / valor / stock bajo / sin stock / hoy   │
//	│  TABLA PRODUCTOS: Código | Nombre | Categoría | Stock | ...  │
//	│  TABLA CATEGORÍAS: Nombre | Productos | Valor                │
//	│  TABLA MOVIMIENTOS RECIENTES                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

var _ reporting.InventoryPDFGenerator = (*InventoryReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorWarning = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// InventoryReportGenerator implementa reporting.InventoryPDFGenerator.
type InventoryReportGenerator struct {
	appName string
}

// NewInventoryReportGenerator construye el generador; appName aparece como autor del PDF.
func NewInventoryReportGenerator(appName string) *InventoryReportGenerator {
	return &InventoryReportGenerator{appName: appName}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *InventoryReportGenerator) GenerateInventoryReport(doc *dto.ExportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(nonEmpty(g.appName, "inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(doc.Summary))
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("PRODUCTOS"))
	m.AddRows(productHeaderRow())
	m.AddRows(productRows(doc.Products)...)
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("CATEGORÍAS"))
	m.AddRows(categoryHeaderRow())
	m.AddRows(categoryRows(doc.Categories)...)
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("MOVIMIENTOS RECIENTES"))
	if len(doc.RecentMovements) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(movementHeaderRow())
		m.AddRows(movementRows(doc.RecentMovements)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y fecha (izq); QR con el resumen para conciliar contra el JSON (der).
func headerRow(doc *dto.ExportDocument) core.Row {
	qr := fmt.Sprintf("fecha=%s;productos=%d;valor=%s",
		doc.Date, doc.Summary.TotalProducts, decimal.NewFromFloat(doc.Summary.TotalInventoryValue).StringFixed(2))
	return row.New(24).Add(
		col.New(9).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
			text.New("Generado: "+doc.Date, props.Text{Size: 9, Top: 12, Color: colorGray}),
		),
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
	)
}

func summaryRow(s dto.ExportSummary) core.Row {
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(12/5).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Productos", strconv.Itoa(s.TotalProducts), colorPrimary),
		cell("Valor inventario", "$"+formatMoney(s.TotalInventoryValue), colorPrimary),
		cell("Stock bajo", strconv.Itoa(s.LowStockCount), colorWarning),
		cell("Sin stock", strconv.Itoa(s.OutOfStockCount), colorDanger),
		cell("Movimientos hoy", strconv.Itoa(s.TodayMovementCount), colorPrimary),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func productHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Nombre", 3, align.Left),
		headerCell("Categoría", 2, align.Left),
		headerCell("Stock", 1, align.Right),
		headerCell("Mín.", 1, align.Right),
		headerCell("P. compra", 2, align.Right),
		headerCell("Estado", 1, align.Center),
	)
}

func productRows(products []dto.ExportProduct) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			cell(p.Code, 2, align.Left, nil),
			cell(p.Name, 3, align.Left, nil),
			cell(p.Category, 2, align.Left, colorGray),
			cell(strconv.Itoa(p.CurrentStock), 1, align.Right, nil),
			cell(strconv.Itoa(p.MinStock), 1, align.Right, colorGray),
			cell("$"+formatMoney(p.PurchasePrice), 2, align.Right, nil),
			cell(statusLabel(p.Status), 1, align.Center, statusColor(p.Status)),
		))
	}
	return rows
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Categoría", 6, align.Left),
		headerCell("Productos", 2, align.Right),
		headerCell("Valor", 4, align.Right),
	)
}

func categoryRows(categories []dto.ExportCategory) []core.Row {
	rows := make([]core.Row, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, row.New(6).Add(
			cell(c.Name, 6, align.Left, nil),
			cell(strconv.Itoa(c.ProductCount), 2, align.Right, nil),
			cell("$"+formatMoney(c.StockValue), 4, align.Right, nil),
		))
	}
	return rows
}

func movementHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Fecha", 4, align.Left),
		headerCell("Producto", 3, align.Left),
		headerCell("Tipo", 2, align.Center),
		headerCell("Cant.", 1, align.Right),
		headerCell("Motivo", 2, align.Left),
	)
}

func movementRows(movs []dto.ExportMovement) []core.Row {
	rows := make([]core.Row, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, row.New(6).Add(
			cell(m.Date, 4, align.Left, colorGray),
			cell(m.Product, 3, align.Left, nil),
			cell(typeLabel(m.Type), 2, align.Center, nil),
			cell(strconv.Itoa(m.Quantity), 1, align.Right, nil),
			cell(m.Reason, 2, align.Left, colorGray),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s inventory.StockStatus) string {
	switch s {
	case inventory.StatusOutOfStock:
		return "SIN STOCK"
	case inventory.StatusLowStock:
		return "BAJO"
	default:
		return "OK"
	}
}

func statusColor(s inventory.StockStatus) *props.Color {
	switch s {
	case inventory.StatusOutOfStock:
		return colorDanger
	case inventory.StatusLowStock:
		return colorWarning
	default:
		return nil
	}
}

func typeLabel(t string) string {
	if t == "exit" {
		return "Salida"
	}
	return "Entrada"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma. Ej: 12900.5 → "12.900,50".
func formatMoney(v float64) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, frac, _ := strings.Cut(fixed, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf) + "," + frac
}
