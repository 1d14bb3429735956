package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidField          = errors.New("campo inválido")
	ErrDuplicateCode         = errors.New("ya existe un producto con este código")
	ErrDuplicateName         = errors.New("ya existe un registro con este nombre")
	ErrDuplicateUsername     = errors.New("el nombre de usuario ya está registrado")
	ErrHasDependentMovements = errors.New("el producto tiene movimientos asociados")
	ErrHasDependentProducts  = errors.New("hay productos que usan este registro")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
)

// FieldError indica qué campo de la entrada debe corregirse. errors.Is(err, ErrInvalidField) es true.
type FieldError struct {
	Field  string
	Reason string
}

// NewFieldError construye un FieldError.
func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrInvalidField.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }
