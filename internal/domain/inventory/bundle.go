package inventory

import (
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ValidateBundleItem aplica las reglas de composición: cantidad positiva, padre distinto del hijo,
// misma empresa y sin anidamiento (un hijo no puede ser bundle; un padre no puede ser hijo de otro bundle).
func ValidateBundleItem(parent, child *entity.Product, quantity int, parentIsChild bool) error {
	if quantity <= 0 {
		return domain.NewValidationError("Bundle quantity must be positive")
	}
	if parent.ID == child.ID {
		return domain.NewValidationError("A product cannot contain itself")
	}
	if parent.CompanyID != child.CompanyID {
		return domain.ErrNotFound
	}
	if child.IsBundle {
		return domain.NewValidationError("Bundles cannot be nested")
	}
	if parentIsChild {
		return domain.NewValidationError("Bundles cannot be nested")
	}
	return nil
}
