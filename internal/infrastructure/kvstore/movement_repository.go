package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre la colección movements.
type MovementRepo struct {
	c collection[entity.Movement]
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(store Store, prefix string) *MovementRepo {
	return &MovementRepo{c: newCollection[entity.Movement](store, prefix, KeyMovements)}
}

// Create agrega el movimiento (append-only salvo Delete).
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	return r.c.save(ctx, append(items, *movement))
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(m *entity.Movement) bool { return m.ID == id })
	if i < 0 {
		return nil, nil
	}
	m := items[i]
	return &m, nil
}

// List devuelve los movimientos en orden de registro.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(items), nil
}

// ExistsForProduct indica si algún movimiento referencia al producto.
func (r *MovementRepo) ExistsForProduct(ctx context.Context, productID string) (bool, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(items, func(m *entity.Movement) bool { return m.ProductID == productID }) >= 0, nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(m *entity.Movement) bool { return m.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	return r.c.save(ctx, append(items[:i], items[i+1:]...))
}
