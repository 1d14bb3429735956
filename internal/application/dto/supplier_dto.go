package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest merge parcial.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// SupplierResponse proveedor con la cantidad de productos que lo referencian.
type SupplierResponse struct {
	entity.Supplier
	ProductCount int `json:"productCount"`
}
