package transactions

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Todos los ajustes del libro de una misma
// mutación (crear/editar/cancelar/recibir) se confirman o revierten juntos;
// así no queda ventana de inconsistencia ante fallas parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.WarehouseTransactionRepository,
		qtyRepo repository.QuantityRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
