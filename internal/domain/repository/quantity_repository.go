package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// QuantityRepository define el puerto del libro de existencias por
// (producto, bodega). Adjust es la única vía de mutación y debe ser atómico
// frente a ajustes concurrentes sobre la misma clave; no valida que el
// resultado quede no-negativo (negativo = sobrevendido/reservado).
type QuantityRepository interface {
	// Adjust incrementa el contador en delta (puede ser negativo), creando el
	// registro con valor delta si no existe. Devuelve el contador resultante.
	Adjust(productID, warehouseID string, delta int64) (int64, error)
	// Get lee el contador actual; par inexistente se lee como cero.
	Get(productID, warehouseID string) (*entity.QuantityRecord, error)
	// ListByWarehouse proyección de existencias de una bodega, paginada.
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.QuantityRecord, error)
}
