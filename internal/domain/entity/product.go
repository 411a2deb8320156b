package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. El núcleo de traslados
// solo lo consulta para validar referencias y proyectar listados; las
// existencias por bodega viven en QuantityRecord.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
