package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores y vínculos supplier_products.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el repositorio (pool o tx).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, company_id, name, contact_email, created_at`

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.CompanyID, s.Name, s.ContactEmail, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !validID(id) {
		return nil, nil
	}
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactEmail, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListByCompany lista proveedores de la empresa.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	if !validID(companyID) {
		return nil, nil
	}
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactEmail, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LinkProduct crea o actualiza el vínculo. Un segundo primario para el producto viola el índice parcial.
func (r *SupplierRepo) LinkProduct(ctx context.Context, link *entity.SupplierProduct) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_products (supplier_id, product_id, is_primary)
		VALUES ($1, $2, $3)
		ON CONFLICT (supplier_id, product_id) DO UPDATE SET is_primary = EXCLUDED.is_primary`,
		link.SupplierID, link.ProductID, link.IsPrimary,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("link supplier: %w", domain.ErrConflict)
		}
		return fmt.Errorf("link supplier: %w", err)
	}
	return nil
}

// ClearPrimary desmarca el primario actual del producto.
func (r *SupplierRepo) ClearPrimary(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `UPDATE supplier_products SET is_primary = FALSE WHERE product_id = $1 AND is_primary`, productID)
	if err != nil {
		return fmt.Errorf("clear primary supplier: %w", err)
	}
	return nil
}
