package entity

import "time"

// Disponibilidad derivada del contador de existencias.
const (
	AvailabilityAvailable = "available" // quantity > 0
	AvailabilitySold      = "sold"      // quantity == 0
	AvailabilityReserved  = "reserved"  // quantity < 0 (sobrevendido)
)

// QuantityRecord es el contador autoritativo de existencias por (producto, bodega).
// Se crea de forma perezosa en el primer ajuste y nunca se elimina: cantidad
// cero es un estado válido, no una ausencia.
type QuantityRecord struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}

// Availability deriva el estado de disponibilidad del contador actual.
// El mapeo es política de negocio dada: negativo representa stock reservado/sobrevendido.
func (q *QuantityRecord) Availability() string {
	switch {
	case q.Quantity > 0:
		return AvailabilityAvailable
	case q.Quantity < 0:
		return AvailabilityReserved
	default:
		return AvailabilitySold
	}
}
