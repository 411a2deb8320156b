package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.QuantityRepository = (*QuantityRepo)(nil)

// QuantityRepo implementación del puerto QuantityRepository sobre PostgreSQL.
// El upsert con incremento en una sola sentencia garantiza atomicidad por
// clave frente a ajustes concurrentes; el registro se crea en el primer ajuste
// y nunca se elimina.
type QuantityRepo struct {
	q Querier
}

// NewQuantityRepository construye el adaptador del libro de existencias.
func NewQuantityRepository(q Querier) *QuantityRepo {
	return &QuantityRepo{q: q}
}

// Adjust incrementa el contador (producto, bodega) en delta y devuelve el valor resultante.
func (r *QuantityRepo) Adjust(productID, warehouseID string, delta int64) (int64, error) {
	query := `
		INSERT INTO quantity_records (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = quantity_records.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING quantity`
	var result int64
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, delta, time.Now()).Scan(&result)
	if err != nil {
		return 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return result, nil
}

// Get lee el contador actual; par inexistente se lee como cero.
func (r *QuantityRepo) Get(productID, warehouseID string) (*entity.QuantityRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM quantity_records WHERE product_id = $1 AND warehouse_id = $2`
	var rec entity.QuantityRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.QuantityRecord{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get quantity: %w", err)
	}
	return &rec, nil
}

// ListByWarehouse lista las existencias de una bodega con paginación.
func (r *QuantityRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.QuantityRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM quantity_records WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quantities: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuantityRecord
	for rows.Next() {
		var rec entity.QuantityRecord
		if err := rows.Scan(&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quantity: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
