package catalog

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// AdjustStock suma delta (con signo) al stock del producto en su propia unidad de trabajo.
// ErrInsufficientStock si el resultado sería negativo.
func (uc *CatalogUseCase) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.AdjustStockInTx(ctx, repos, id, delta)
		product = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStockInTx igual que AdjustStock pero usando los repositorios de la unidad de trabajo
// del caller (el ledger la usa dentro de su propia unidad).
func (uc *CatalogUseCase) AdjustStockInTx(ctx context.Context, repos repository.Repositories, id string, delta int) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !inventory.CanApply(p.CurrentStock, delta) {
		return nil, domain.ErrInsufficientStock
	}
	return uc.applyDelta(ctx, repos, p, delta)
}

// ReverseStockInTx aplica delta sin verificar stock suficiente: deshacer una entrada puede dejar el
// stock negativo si hubo salidas posteriores. Se registra una advertencia en ese caso.
func (uc *CatalogUseCase) ReverseStockInTx(ctx context.Context, repos repository.Repositories, id string, delta int) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p, err = uc.applyDelta(ctx, repos, p, delta)
	if err != nil {
		return nil, err
	}
	if p.CurrentStock < 0 {
		uc.log.Warn().Str("productId", p.ID).Int("currentStock", p.CurrentStock).
			Msg("la reversión dejó el stock en negativo")
	}
	return p, nil
}

func (uc *CatalogUseCase) applyDelta(ctx context.Context, repos repository.Repositories, p *entity.Product, delta int) (*entity.Product, error) {
	p.CurrentStock += delta
	p.UpdatedAt = uc.now()
	if err := repos.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
