package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryRequest merge parcial.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse categoría con la cantidad de productos que la usan.
type CategoryResponse struct {
	entity.Category
	ProductCount int `json:"productCount"`
}
