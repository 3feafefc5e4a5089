package inventory

import (
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SelectPrimarySupplier elige el proveedor de reorden de un producto.
// Regla: el vínculo marcado IsPrimary; si no hay ninguno, el de menor SupplierID.
// Devuelve nil si no hay proveedores.
func SelectPrimarySupplier(contacts []entity.SupplierContact) *entity.SupplierContact {
	if len(contacts) == 0 {
		return nil
	}
	sorted := make([]entity.SupplierContact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsPrimary != sorted[j].IsPrimary {
			return sorted[i].IsPrimary
		}
		return sorted[i].SupplierID < sorted[j].SupplierID
	})
	chosen := sorted[0]
	return &chosen
}
