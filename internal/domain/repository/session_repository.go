package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SessionRepository persiste el usuario de la sesión activa (colección currentUser, 0 o 1 elemento).
type SessionRepository interface {
	Current(ctx context.Context) (*entity.User, error)
	Set(ctx context.Context, user *entity.User) error
	Clear(ctx context.Context) error
}
