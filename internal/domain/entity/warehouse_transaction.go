package entity

import "time"

// Tipos de traslado de bodega.
const (
	KindInbound  = "inbound"  // entrada a bodega destino
	KindOutbound = "outbound" // salida desde bodega origen
	KindTransfer = "transfer" // entre bodegas (origen y destino)
)

// Estados del flujo de un traslado.
// draft → confirmed (sin recepción) o draft → awaiting → received (con recepción);
// cualquier estado distinto de cancelled puede pasar a cancelled.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusAwaiting  = "awaiting"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

// WarehouseTransaction es el agregado de un traslado: cabecera con tipo,
// bodegas, flujo de recepción y auditoría. Las líneas viven en TransactionItem.
type WarehouseTransaction struct {
	ID                     string
	Sequence               int64 // numeración humana, asignada una sola vez
	Kind                   string
	SourceWarehouseID      string // requerida para outbound y transfer
	DestinationWarehouseID string // requerida para inbound y transfer
	RequiresReceiving      bool   // fijada al crear; el destino se acredita solo al recibir
	Status                 string
	Accepted               bool // true una vez completada la recepción
	Comment                string
	CreatedBy              string
	AcceptedBy             string
	CancelledBy            string
	CreatedAt              time.Time
	AcceptedAt             *time.Time
	CancelledAt            *time.Time
}

// QuantityDelta es un ajuste pendiente sobre el contador (producto, bodega).
type QuantityDelta struct {
	ProductID   string
	WarehouseID string
	Delta       int64
}

// ValidKind indica si el tipo de traslado es conocido.
func ValidKind(kind string) bool {
	return kind == KindInbound || kind == KindOutbound || kind == KindTransfer
}

// KindNeedsSource indica si el tipo exige bodega origen.
func KindNeedsSource(kind string) bool {
	return kind == KindOutbound || kind == KindTransfer
}

// KindNeedsDestination indica si el tipo exige bodega destino.
func KindNeedsDestination(kind string) bool {
	return kind == KindInbound || kind == KindTransfer
}

// CanEdit indica si la transacción admite edición: received y cancelled son terminales.
func (t *WarehouseTransaction) CanEdit() bool {
	return t.Status == StatusDraft || t.Status == StatusConfirmed || t.Status == StatusAwaiting
}

// CanCancel indica si la transacción admite cancelación. Un traslado received
// sí puede cancelarse (revierte ambos lados); cancelled no se cancela dos veces.
func (t *WarehouseTransaction) CanCancel() bool {
	return t.Status != StatusCancelled
}

// CanReceive indica si la transacción admite el paso de recepción.
func (t *WarehouseTransaction) CanReceive() bool {
	return t.Status == StatusAwaiting
}

// LedgerEffects deriva los ajustes del libro ya aplicados por el estado
// COMPROMETIDO actual de la transacción:
//   - lado origen: -requestedQuantity por línea, aplicado al crear
//   - lado destino: +requestedQuantity si no requiere recepción,
//     +receivedQuantity si ya fue aceptada, nada mientras está awaiting
//
// La compensación (edición/cancelación) es exactamente el inverso de esta
// función evaluada sobre los valores previos, nunca sobre los nuevos.
func (t *WarehouseTransaction) LedgerEffects(items []*TransactionItem) []QuantityDelta {
	if t.Status == StatusDraft || t.Status == StatusCancelled {
		return nil
	}
	var out []QuantityDelta
	for _, it := range items {
		if t.SourceWarehouseID != "" {
			out = append(out, QuantityDelta{
				ProductID:   it.ProductID,
				WarehouseID: t.SourceWarehouseID,
				Delta:       -it.RequestedQuantity,
			})
		}
		if t.DestinationWarehouseID != "" {
			switch {
			case !t.RequiresReceiving:
				out = append(out, QuantityDelta{
					ProductID:   it.ProductID,
					WarehouseID: t.DestinationWarehouseID,
					Delta:       it.RequestedQuantity,
				})
			case t.Accepted:
				out = append(out, QuantityDelta{
					ProductID:   it.ProductID,
					WarehouseID: t.DestinationWarehouseID,
					Delta:       it.ReceivedQuantity,
				})
			}
		}
	}
	return out
}

// InverseDeltas devuelve los ajustes opuestos, para compensar efectos ya aplicados.
func InverseDeltas(deltas []QuantityDelta) []QuantityDelta {
	out := make([]QuantityDelta, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, QuantityDelta{
			ProductID:   d.ProductID,
			WarehouseID: d.WarehouseID,
			Delta:       -d.Delta,
		})
	}
	return out
}
