package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// DefaultRecentMovements cantidad de movimientos recientes del documento exportado.
const DefaultRecentMovements = 50

// Config parámetros de los reportes.
type Config struct {
	RecentMovements int
	Location        *time.Location
	Now             func() time.Time
}

// ReportingUseCase arma los reportes a partir de una lectura de productos, categorías y movimientos.
// No modifica nada.
type ReportingUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movRepo      repository.MovementRepository
	generator    InventoryPDFGenerator
	recent       int
	loc          *time.Location
	now          func() time.Time
}

// NewReportingUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewReportingUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movRepo repository.MovementRepository,
	generator InventoryPDFGenerator,
	cfg Config,
) *ReportingUseCase {
	uc := &ReportingUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movRepo:      movRepo,
		generator:    generator,
		recent:       cfg.RecentMovements,
		loc:          cfg.Location,
		now:          cfg.Now,
	}
	if uc.recent <= 0 {
		uc.recent = DefaultRecentMovements
	}
	if uc.loc == nil {
		uc.loc = time.Local
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

type snapshot struct {
	products   []*entity.Product
	categories []*entity.Category
	movements  []*entity.Movement
}

func (uc *ReportingUseCase) load(ctx context.Context, withMovements bool) (*snapshot, error) {
	var s snapshot
	var err error
	if s.products, err = uc.productRepo.List(ctx); err != nil {
		return nil, err
	}
	if s.categories, err = uc.categoryRepo.List(ctx); err != nil {
		return nil, err
	}
	if withMovements {
		if s.movements, err = uc.movRepo.List(ctx); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Dashboard indicadores del panel principal y los movimientos más recientes.
func (uc *ReportingUseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	s, err := uc.load(ctx, true)
	if err != nil {
		return nil, err
	}
	hp := Partition(s.products)
	today := inventory.TotalsForDay(s.movements, uc.now(), uc.loc)
	return &dto.DashboardDTO{
		TotalProducts:   len(s.products),
		LowStockCount:   len(hp.LowStock),
		OutOfStockCount: len(hp.OutOfStock),
		TodayEntries:    today.Entries,
		TodayExits:      today.Exits,
		InventoryValue:  Valuation(s.products),
		RecentMovements: uc.movementRows(s, 10),
	}, nil
}

// StockReport valorización y partición de salud.
func (uc *ReportingUseCase) StockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	s, err := uc.load(ctx, false)
	if err != nil {
		return nil, err
	}
	hp := Partition(s.products)
	return &dto.StockReportDTO{
		TotalProducts:  len(s.products),
		InventoryValue: Valuation(s.products),
		OutOfStock:     len(hp.OutOfStock),
		LowStock:       len(hp.LowStock),
		Healthy:        len(hp.Healthy),
	}, nil
}

// Categories desglose por categoría.
func (uc *ReportingUseCase) Categories(ctx context.Context) ([]dto.CategoryBreakdownItem, error) {
	s, err := uc.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(s.products, s.categories), nil
}

// LowStock listado de productos a reponer.
func (uc *ReportingUseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	s, err := uc.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return LowStock(s.products, s.categories), nil
}

// Movements movimientos (ya filtrados) con el nombre del producto resuelto.
func (uc *ReportingUseCase) Movements(ctx context.Context, movs []*entity.Movement) ([]dto.MovementRow, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.movementRows(&snapshot{products: products, movements: movs}, -1), nil
}

// Export arma el documento exportado.
func (uc *ReportingUseCase) Export(ctx context.Context) (*dto.ExportDocument, error) {
	s, err := uc.load(ctx, true)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	hp := Partition(s.products)
	catNames := categoryNames(s.categories)
	prodNames := productNames(s.products)

	doc := &dto.ExportDocument{
		Date: FormatTimestamp(now.In(uc.loc)),
		Summary: dto.ExportSummary{
			TotalProducts:       len(s.products),
			TotalInventoryValue: Valuation(s.products).InexactFloat64(),
			LowStockCount:       len(hp.LowStock),
			OutOfStockCount:     len(hp.OutOfStock),
			TodayMovementCount:  inventory.TotalsForDay(s.movements, now, uc.loc).Total(),
		},
		Products:        make([]dto.ExportProduct, 0, len(s.products)),
		RecentMovements: make([]dto.ExportMovement, 0, uc.recent),
		Categories:      make([]dto.ExportCategory, 0, len(s.categories)),
	}
	for _, p := range s.products {
		doc.Products = append(doc.Products, dto.ExportProduct{
			Name:          p.Name,
			Code:          p.Code,
			Category:      nameOr(catNames, p.CategoryID, NoCategoryName),
			CurrentStock:  p.CurrentStock,
			MinStock:      p.MinStock,
			PurchasePrice: p.PurchasePrice.InexactFloat64(),
			SalePrice:     p.SalePrice.InexactFloat64(),
			Status:        inventory.ClassifyStock(p.CurrentStock, p.MinStock),
		})
	}
	for _, m := range uc.newest(s.movements, uc.recent) {
		doc.RecentMovements = append(doc.RecentMovements, dto.ExportMovement{
			Date:     FormatLongDate(m.Date.In(uc.loc)),
			Product:  nameOr(prodNames, m.ProductID, UnknownProductName),
			Type:     m.Type,
			Quantity: m.Quantity,
			Reason:   m.Reason,
		})
	}
	byCat := make(map[string][]*entity.Product)
	for _, p := range s.products {
		byCat[p.CategoryID] = append(byCat[p.CategoryID], p)
	}
	for _, c := range s.categories {
		doc.Categories = append(doc.Categories, dto.ExportCategory{
			Name:         c.Name,
			ProductCount: len(byCat[c.ID]),
			StockValue:   Valuation(byCat[c.ID]).InexactFloat64(),
		})
	}
	return doc, nil
}

// ExportFilename nombre sugerido para el documento exportado.
func (uc *ReportingUseCase) ExportFilename(ext string) string {
	return fmt.Sprintf("reporte_inventario_%s.%s", inventory.DayKey(uc.now(), uc.loc), ext)
}

// ExportPDF renderiza el documento exportado como PDF.
func (uc *ReportingUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.generator == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	doc, err := uc.Export(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInventoryReport(doc)
}

// newest copia y ordena; n < 0 devuelve todos.
func (uc *ReportingUseCase) newest(movs []*entity.Movement, n int) []*entity.Movement {
	sorted := append([]*entity.Movement(nil), movs...)
	inventory.SortNewestFirst(sorted)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (uc *ReportingUseCase) movementRows(s *snapshot, n int) []dto.MovementRow {
	names := productNames(s.products)
	movs := uc.newest(s.movements, n)
	rows := make([]dto.MovementRow, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, dto.MovementRow{
			ID:        m.ID,
			Date:      FormatLongDate(m.Date.In(uc.loc)),
			Product:   nameOr(names, m.ProductID, UnknownProductName),
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			UserID:    m.UserID,
			Notes:     m.Notes,
		})
	}
	return rows
}
