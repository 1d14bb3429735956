// Package catalog administra productos, categorías y proveedores, y es el único punto que
// modifica el stock de un producto.
package catalog

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// CatalogUseCase casos de uso del catálogo. Las escrituras corren dentro de TxRunner para que
// la verificación de unicidad y el guardado no se intercalen con otra escritura.
type CatalogUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repositories
	access   ports.Access
	log      *logger.Logger
	now      func() time.Time
}

// Option configura el caso de uso.
type Option func(*CatalogUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *CatalogUseCase) { uc.now = now }
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	txRunner repository.TxRunner,
	repos repository.Repositories,
	access ports.Access,
	log *logger.Logger,
	opts ...Option,
) *CatalogUseCase {
	uc := &CatalogUseCase{
		txRunner: txRunner,
		repos:    repos,
		access:   access,
		log:      log.Component("catalog"),
		now:      time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}
