package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo guarda el usuario activo en la colección currentUser (arreglo de 0 o 1 elemento).
type SessionRepo struct {
	c collection[entity.User]
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(store Store, prefix string) *SessionRepo {
	return &SessionRepo{c: newCollection[entity.User](store, prefix, KeyCurrentUser)}
}

// Current devuelve el usuario de la sesión o nil.
func (r *SessionRepo) Current(ctx context.Context) (*entity.User, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	u := items[0]
	return &u, nil
}

// Set reemplaza la sesión activa.
func (r *SessionRepo) Set(ctx context.Context, user *entity.User) error {
	return r.c.save(ctx, []entity.User{*user})
}

// Clear cierra la sesión.
func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.c.save(ctx, []entity.User{})
}
