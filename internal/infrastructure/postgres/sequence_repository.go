package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico por alcance sobre PostgreSQL. El upsert con
// incremento asigna valores monotónicos sin huecos de lectura-modificación;
// un valor entregado nunca se reutiliza aunque la transacción que lo pidió se
// cancele después.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador del contador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente valor del contador para el alcance dado.
func (r *SequenceRepo) Next(scope string) (int64, error) {
	query := `
		INSERT INTO sequence_counters (scope, value)
		VALUES ($1, 1)
		ON CONFLICT (scope)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, scope).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence (%s): %w", scope, err)
	}
	return value, nil
}
