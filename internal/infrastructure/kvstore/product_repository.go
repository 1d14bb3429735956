package kvstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productRecord es el producto tal como se persiste: los precios van como números JSON,
// no como cadenas. La lectura acepta ambos formatos.
type productRecord entity.Product

func (r productRecord) MarshalJSON() ([]byte, error) {
	type plain productRecord
	return json.Marshal(struct {
		plain
		PurchasePrice json.Number `json:"purchasePrice"`
		SalePrice     json.Number `json:"salePrice"`
	}{plain(r), json.Number(r.PurchasePrice.String()), json.Number(r.SalePrice.String())})
}

func productRecords(products []entity.Product) []productRecord {
	out := make([]productRecord, len(products))
	for i := range products {
		out[i] = productRecord(products[i])
	}
	return out
}

// ProductRepo implementación del puerto ProductRepository sobre la colección products.
type ProductRepo struct {
	c collection[productRecord]
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store Store, prefix string) *ProductRepo {
	return &ProductRepo{c: newCollection[productRecord](store, prefix, KeyProducts)}
}

// Create agrega el producto al final de la colección.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	return r.c.save(ctx, append(items, productRecord(*product)))
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.find(ctx, func(p *entity.Product) bool { return p.ID == id })
}

// GetByCode obtiene un producto por código (comparación exacta).
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.find(ctx, func(p *entity.Product) bool { return p.Code == code })
}

func (r *ProductRepo) find(ctx context.Context, match func(*entity.Product) bool) (*entity.Product, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfProduct(items, match)
	if i < 0 {
		return nil, nil
	}
	p := entity.Product(items[i])
	return &p, nil
}

func indexOfProduct(items []productRecord, match func(*entity.Product) bool) int {
	return indexOf(items, func(r *productRecord) bool { return match((*entity.Product)(r)) })
}

// Update reemplaza el producto con el mismo ID.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOfProduct(items, func(p *entity.Product) bool { return p.ID == product.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	items[i] = productRecord(*product)
	return r.c.save(ctx, items)
}

// List lista los productos en orden de creación.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(items))
	for i := range items {
		p := entity.Product(items[i])
		out = append(out, &p)
	}
	return out, nil
}

// CountByCategory cuenta los productos de una categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	return r.count(ctx, func(p *entity.Product) bool { return p.CategoryID == categoryID })
}

// CountBySupplier cuenta los productos de un proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	return r.count(ctx, func(p *entity.Product) bool { return p.HasSupplier(supplierID) })
}

func (r *ProductRepo) count(ctx context.Context, match func(*entity.Product) bool) (int, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range items {
		if match((*entity.Product)(&items[i])) {
			n++
		}
	}
	return n, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	items, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOfProduct(items, func(p *entity.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	return r.c.save(ctx, append(items[:i], items[i+1:]...))
}
