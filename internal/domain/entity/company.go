package entity

import "time"

// Company representa una organización/tenant del sistema. Es la raíz de bodegas, productos y proveedores.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
