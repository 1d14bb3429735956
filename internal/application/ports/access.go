package ports

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Access identifica a quien actúa y decide las operaciones restringidas a administradores.
// La implementa el caso de uso de auth.
type Access interface {
	// CurrentUser devuelve (nil, nil) si no hay sesión.
	CurrentUser(ctx context.Context) (*entity.User, error)
	// RequireAdmin devuelve ErrUnauthorized sin sesión y ErrForbidden si el usuario no es admin.
	RequireAdmin(ctx context.Context) (*entity.User, error)
}
