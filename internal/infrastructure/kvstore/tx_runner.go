package kvstore

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las unidades de trabajo del inventario dentro del proceso.
// No ofrece rollback: si fn falla después de una escritura, las escrituras previas permanecen.
type TxRunner struct {
	mu    sync.Mutex
	repos repository.Repositories
}

// NewTxRunner construye el runner con los repositorios del inventario.
func NewTxRunner(repos repository.Repositories) *TxRunner {
	return &TxRunner{repos: repos}
}

// Run ejecuta fn con acceso exclusivo a los repositorios.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.repos)
}
