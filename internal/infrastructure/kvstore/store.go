// Package kvstore implementa el almacén clave-valor de colecciones JSON y los repositorios
// del inventario sobre él. Cada colección (products, categories, ...) es un arreglo JSON
// guardado bajo una clave; las escrituras reemplazan el arreglo completo (último escritor gana).
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Nombres de las colecciones persistidas.
const (
	KeyProducts    = "products"
	KeyCategories  = "categories"
	KeySuppliers   = "suppliers"
	KeyMovements   = "movements"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

// Store es el puerto genérico clave-valor. Get devuelve (nil, nil) si la clave no existe.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// collection lee y escribe un arreglo JSON de T bajo una clave.
type collection[T any] struct {
	store Store
	key   string
}

func newCollection[T any](store Store, prefix, name string) collection[T] {
	return collection[T]{store: store, key: prefix + name}
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("leer colección %s: %w", c.key, err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decodificar colección %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("codificar colección %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("guardar colección %s: %w", c.key, err)
	}
	return nil
}

func indexOf[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}

func pointers[T any](items []T) []*T {
	out := make([]*T, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out
}
