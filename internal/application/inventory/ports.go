package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockAdjuster es el mutador de stock del catálogo, usado dentro de la unidad de trabajo del ledger.
type StockAdjuster interface {
	AdjustStockInTx(ctx context.Context, repos repository.Repositories, productID string, delta int) (*entity.Product, error)
	ReverseStockInTx(ctx context.Context, repos repository.Repositories, productID string, delta int) (*entity.Product, error)
}
