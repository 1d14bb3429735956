package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre la colección users.
type UserRepo struct {
	c collection[entity.User]
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store Store, prefix string) *UserRepo {
	return &UserRepo{c: newCollection[entity.User](store, prefix, KeyUsers)}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	return r.c.save(ctx, append(items, *user))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id })
}

// GetByUsername busca por nombre de usuario (comparación exacta).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepo) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, match)
	if i < 0 {
		return nil, nil
	}
	u := items[i]
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, func(u *entity.User) bool { return u.ID == user.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	items[i] = *user
	return r.c.save(ctx, items)
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return pointers(items), nil
}
