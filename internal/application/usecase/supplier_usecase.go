package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores y su vínculo con productos.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	tx     ports.TxRunner
	alerts ports.AlertInvalidator
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, tx ports.TxRunner, alerts ports.AlertInvalidator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, tx: tx, alerts: alerts}
}

// Create crea un proveedor en la empresa del token.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores por empresa con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LinkProduct vincula un proveedor con un producto de la misma empresa.
// Si is_primary, el primario anterior del producto se desmarca en la misma transacción.
func (uc *SupplierUseCase) LinkProduct(ctx context.Context, companyID, supplierID string, in dto.LinkSupplierProductRequest) error {
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		supplier, err := r.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil || supplier.CompanyID != companyID {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if in.IsPrimary {
			if err := r.Suppliers.ClearPrimary(ctx, product.ID); err != nil {
				return err
			}
		}
		return r.Suppliers.LinkProduct(ctx, &entity.SupplierProduct{
			SupplierID: supplier.ID,
			ProductID:  product.ID,
			IsPrimary:  in.IsPrimary,
		})
	})
	if err != nil {
		return err
	}
	invalidateAlerts(ctx, uc.alerts, companyID)
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
	}
}
