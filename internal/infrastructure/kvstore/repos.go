package kvstore

import "github.com/jhoicas/inventario-ledger/internal/domain/repository"

// Repos agrupa todos los repositorios construidos sobre un mismo Store.
type Repos struct {
	Products   *ProductRepo
	Categories *CategoryRepo
	Suppliers  *SupplierRepo
	Movements  *MovementRepo
	Users      *UserRepo
	Session    *SessionRepo
}

// NewRepos construye los repositorios. prefix se antepone a cada nombre de colección.
func NewRepos(store Store, prefix string) *Repos {
	return &Repos{
		Products:   NewProductRepository(store, prefix),
		Categories: NewCategoryRepository(store, prefix),
		Suppliers:  NewSupplierRepository(store, prefix),
		Movements:  NewMovementRepository(store, prefix),
		Users:      NewUserRepository(store, prefix),
		Session:    NewSessionRepository(store, prefix),
	}
}

// Inventory devuelve el conjunto de repositorios que usa TxRunner.
func (r *Repos) Inventory() repository.Repositories {
	return repository.Repositories{
		Products:   r.Products,
		Categories: r.Categories,
		Suppliers:  r.Suppliers,
		Movements:  r.Movements,
	}
}
