package repository

import "context"

// Repositories agrupa los repositorios que participan en una unidad de trabajo del inventario.
type Repositories struct {
	Products   ProductRepository
	Categories CategoryRepository
	Suppliers  SupplierRepository
	Movements  MovementRepository
}

// TxRunner ejecuta fn como una unidad de trabajo serializada, pasando los repositorios atados a ella.
// No hay rollback entre colecciones: cada escritura es una operación independiente del store.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
