package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// CreateCategory crea una categoría con nombre único sin distinguir mayúsculas.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewFieldError("name", "requerido")
	}
	now := uc.now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Categories.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateName
		}
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory merge parcial; un cambio de nombre se vuelve a verificar contra las demás.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*entity.Category, error) {
	var category *entity.Category
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		c, err := repos.Categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.NewFieldError("name", "requerido")
			}
			other, err := repos.Categories.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != c.ID {
				return domain.ErrDuplicateName
			}
			c.Name = name
		}
		if in.Description != nil {
			c.Description = strings.TrimSpace(*in.Description)
		}
		c.UpdatedAt = uc.now()
		category = c
		return repos.Categories.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory elimina una categoría que ningún producto usa. Solo admin.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.access.RequireAdmin(ctx); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		c, err := repos.Categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasDependentProducts
		}
		return repos.Categories.Delete(ctx, id)
	})
}

// GetCategory devuelve la categoría con su cantidad de productos.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repos.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	n, err := uc.repos.Products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{Category: *c, ProductCount: n}, nil
}

// ListCategories lista todas las categorías con su cantidad de productos.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	return uc.SearchCategories(ctx, "")
}

// SearchCategories filtra por nombre o descripción.
func (uc *CatalogUseCase) SearchCategories(ctx context.Context, term string) ([]dto.CategoryResponse, error) {
	cats, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.productCounts(ctx, func(p *entity.Product) []string { return []string{p.CategoryID} })
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		if !entity.ContainsFold(c.Name, term) && !entity.ContainsFold(c.Description, term) {
			continue
		}
		out = append(out, dto.CategoryResponse{Category: *c, ProductCount: counts[c.ID]})
	}
	return out, nil
}

// productCounts cuenta productos por la clave que devuelve keys, en una sola lectura.
func (uc *CatalogUseCase) productCounts(ctx context.Context, keys func(*entity.Product) []string) (map[string]int, error) {
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range products {
		for _, k := range keys(p) {
			counts[k]++
		}
	}
	return counts, nil
}
