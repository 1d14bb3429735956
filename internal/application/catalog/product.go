package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// CreateProduct valida y crea un producto. El código debe ser único (comparación exacta).
// Sin precio de venta se usa el sugerido a partir del de compra.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	now := uc.now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		CategoryID:    strings.TrimSpace(in.CategoryID),
		SupplierID:    normalizeRef(in.SupplierID),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		CurrentStock:  in.CurrentStock,
		MinStock:      in.MinStock,
		Description:   strings.TrimSpace(in.Description),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if product.SalePrice.IsZero() && product.PurchasePrice.IsPositive() {
		product.SalePrice = entity.SuggestedSalePrice(product.PurchasePrice)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := checkReferences(ctx, repos, product); err != nil {
			return err
		}
		existing, err := repos.Products.GetByCode(ctx, product.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateCode
		}
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	uc.warnOnMargin(product)
	uc.log.Debug().Str("productId", product.ID).Str("code", product.Code).Msg("producto creado")
	return product, nil
}

// UpdateProduct aplica un merge parcial y revalida. El stock no se modifica aquí.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		codeChanged := false
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			codeChanged = code != p.Code
			p.Code = code
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.CategoryID != nil {
			p.CategoryID = strings.TrimSpace(*in.CategoryID)
		}
		if in.ClearSupplier {
			p.SupplierID = nil
		} else if in.SupplierID != nil {
			p.SupplierID = normalizeRef(in.SupplierID)
		}
		if in.PurchasePrice != nil {
			p.PurchasePrice = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			p.SalePrice = *in.SalePrice
		}
		if in.MinStock != nil {
			p.MinStock = *in.MinStock
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if err := validateProduct(p); err != nil {
			return err
		}
		if err := checkReferences(ctx, repos, p); err != nil {
			return err
		}
		if codeChanged {
			other, err := repos.Products.GetByCode(ctx, p.Code)
			if err != nil {
				return err
			}
			if other != nil && other.ID != p.ID {
				return domain.ErrDuplicateCode
			}
		}
		p.UpdatedAt = uc.now()
		product = p
		return repos.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.warnOnMargin(product)
	return product, nil
}

// DeleteProduct elimina un producto sin movimientos. Solo admin.
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.access.RequireAdmin(ctx); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		used, err := repos.Movements.ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrHasDependentMovements
		}
		return repos.Products.Delete(ctx, id)
	})
}

// GetProduct obtiene un producto; ErrNotFound si no existe.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListProducts lista todos los productos en orden de creación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.repos.Products.List(ctx)
}

// SearchProducts filtra por término (nombre o código), categoría y estado de stock.
func (uc *CatalogUseCase) SearchProducts(ctx context.Context, f dto.ProductFilter) ([]*entity.Product, error) {
	switch f.Stock {
	case "", dto.StockFilterLow, dto.StockFilterOut:
	default:
		return nil, domain.NewFieldError("stock", "debe ser low u out")
	}
	all, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.TrimSpace(f.Term)
	out := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if term != "" && !entity.ContainsFold(p.Name, term) && !entity.ContainsFold(p.Code, term) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		status := inventory.ClassifyStock(p.CurrentStock, p.MinStock)
		if f.Stock == dto.StockFilterLow && status != inventory.StatusLowStock {
			continue
		}
		if f.Stock == dto.StockFilterOut && status != inventory.StatusOutOfStock {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Code == "":
		return domain.NewFieldError("code", "requerido")
	case p.Name == "":
		return domain.NewFieldError("name", "requerido")
	case p.CategoryID == "":
		return domain.NewFieldError("categoryId", "requerido")
	case p.PurchasePrice.LessThan(decimal.Zero):
		return domain.NewFieldError("purchasePrice", "no puede ser negativo")
	case p.SalePrice.LessThan(decimal.Zero):
		return domain.NewFieldError("salePrice", "no puede ser negativo")
	case p.CurrentStock < 0:
		return domain.NewFieldError("currentStock", "no puede ser negativo")
	case p.MinStock < 0:
		return domain.NewFieldError("minStock", "no puede ser negativo")
	}
	return nil
}

// checkReferences exige que categoría y proveedor (si hay) existan.
func checkReferences(ctx context.Context, repos repository.Repositories, p *entity.Product) error {
	cat, err := repos.Categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.NewFieldError("categoryId", "la categoría no existe")
	}
	if p.SupplierID == nil {
		return nil
	}
	sup, err := repos.Suppliers.GetByID(ctx, *p.SupplierID)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.NewFieldError("supplierId", "el proveedor no existe")
	}
	return nil
}

// warnOnMargin deja constancia de productos que se venden sin margen; no bloquea el guardado.
func (uc *CatalogUseCase) warnOnMargin(p *entity.Product) {
	if p.SalePrice.LessThanOrEqual(p.PurchasePrice) {
		uc.log.Warn().Str("productId", p.ID).Str("purchasePrice", p.PurchasePrice.String()).
			Str("salePrice", p.SalePrice.String()).Msg("precio de venta menor o igual al de compra")
	}
}

func normalizeRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
