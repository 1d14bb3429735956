package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario (DIP).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context) ([]*entity.Movement, error)
	ExistsForProduct(ctx context.Context, productID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
