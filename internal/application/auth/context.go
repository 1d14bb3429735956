package auth

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type actorKey struct{}

// WithActor adjunta el usuario que actúa en esta petición.
func WithActor(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// ActorFromContext devuelve el usuario adjunto con WithActor, o nil.
func ActorFromContext(ctx context.Context) *entity.User {
	u, _ := ctx.Value(actorKey{}).(*entity.User)
	return u
}

// Anonymous marca la petición como sin usuario: CurrentUser no recurre a la sesión persistida.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, actorKey{}, (*entity.User)(nil))
}

// actorSet indica si el contexto trae actor (o la marca Anonymous).
func actorSet(ctx context.Context) bool {
	_, ok := ctx.Value(actorKey{}).(*entity.User)
	return ok
}
