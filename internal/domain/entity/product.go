package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de columna de products e inventory.
const (
	MaxSKULength         = 50  // VARCHAR(50)
	MaxProductNameLength = 255 // VARCHAR(255)
	MaxStockQuantity     = math.MaxInt32
)

// Product representa un producto o SKU del catálogo de una empresa.
// El stock se maneja por bodega en Inventory.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string          // único por empresa
	Name              string
	Price             decimal.Decimal // NUMERIC(12,2), sin float
	LowStockThreshold int             // alerta cuando quantity <= threshold
	IsBundle          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
