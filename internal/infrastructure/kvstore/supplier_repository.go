package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre la colección suppliers.
type SupplierRepo struct {
	c collection[entity.Supplier]
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(store Store, prefix string) *SupplierRepo {
	return &SupplierRepo{c: newCollection[entity.Supplier](store, prefix, KeySuppliers)}
}

func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	return r.c.save(ctx, append(items, *supplier))
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.find(ctx, func(c *entity.Supplier) bool { return c.ID == id })
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.find(ctx, func(c *entity.Supplier) bool { return entity.SameName(c.Name, name) })
}

func (r *SupplierRepo) find(ctx context.Context, match func(*entity.Supplier) bool) (*entity.Supplier, error) {
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

func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(c *entity.Supplier) bool { return c.ID == supplier.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	items[i] = *supplier
	return r.c.save(ctx, items)
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(items), nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(c *entity.Supplier) bool { return c.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	return r.c.save(ctx, append(items[:i], items[i+1:]...))
}
