package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// CreateSupplier crea un proveedor con nombre único sin distinguir mayúsculas.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	now := uc.now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Suppliers.GetByName(ctx, supplier.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateName
		}
		return repos.Suppliers.Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier merge parcial y revalidación.
func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*entity.Supplier, error) {
	var supplier *entity.Supplier
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		merge(&s.Name, in.Name)
		merge(&s.Contact, in.Contact)
		merge(&s.Email, in.Email)
		merge(&s.Phone, in.Phone)
		merge(&s.Address, in.Address)
		if err := validateSupplier(s); err != nil {
			return err
		}
		if in.Name != nil {
			other, err := repos.Suppliers.GetByName(ctx, s.Name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != s.ID {
				return domain.ErrDuplicateName
			}
		}
		s.UpdatedAt = uc.now()
		supplier = s
		return repos.Suppliers.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier elimina un proveedor que ningún producto referencia. Solo admin.
func (uc *CatalogUseCase) DeleteSupplier(ctx context.Context, id string) error {
	if _, err := uc.access.RequireAdmin(ctx); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Products.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasDependentProducts
		}
		return repos.Suppliers.Delete(ctx, id)
	})
}

// GetSupplier devuelve el proveedor con su cantidad de productos.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repos.Suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	n, err := uc.repos.Products.CountBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{Supplier: *s, ProductCount: n}, nil
}

// ListSuppliers lista todos los proveedores.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	return uc.SearchSuppliers(ctx, "")
}

// SearchSuppliers filtra por nombre, contacto o email.
func (uc *CatalogUseCase) SearchSuppliers(ctx context.Context, term string) ([]dto.SupplierResponse, error) {
	sups, err := uc.repos.Suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.productCounts(ctx, func(p *entity.Product) []string {
		if p.SupplierID == nil {
			return nil
		}
		return []string{*p.SupplierID}
	})
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	out := make([]dto.SupplierResponse, 0, len(sups))
	for _, s := range sups {
		if !entity.ContainsFold(s.Name, term) && !entity.ContainsFold(s.Contact, term) && !entity.ContainsFold(s.Email, term) {
			continue
		}
		out = append(out, dto.SupplierResponse{Supplier: *s, ProductCount: counts[s.ID]})
	}
	return out, nil
}

func validateSupplier(s *entity.Supplier) error {
	switch {
	case s.Name == "":
		return domain.NewFieldError("name", "requerido")
	case s.Contact == "":
		return domain.NewFieldError("contact", "requerido")
	case s.Email != "" && !entity.IsEmail(s.Email):
		return domain.NewFieldError("email", "formato inválido")
	}
	return nil
}

func merge(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
