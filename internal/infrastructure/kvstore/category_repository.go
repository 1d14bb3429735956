package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre la colección categories.
type CategoryRepo struct {
	c collection[entity.Category]
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(store Store, prefix string) *CategoryRepo {
	return &CategoryRepo{c: newCollection[entity.Category](store, prefix, KeyCategories)}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	return r.c.save(ctx, append(items, *category))
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.find(ctx, func(c *entity.Category) bool { return c.ID == id })
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.find(ctx, func(c *entity.Category) bool { return entity.SameName(c.Name, name) })
}

func (r *CategoryRepo) find(ctx context.Context, match func(*entity.Category) bool) (*entity.Category, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, match)
	if i < 0 {
		return nil, nil
	}
	c := items[i]
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(c *entity.Category) bool { return c.ID == category.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	items[i] = *category
	return r.c.save(ctx, items)
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(items), nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(c *entity.Category) bool { return c.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	return r.c.save(ctx, append(items[:i], items[i+1:]...))
}
