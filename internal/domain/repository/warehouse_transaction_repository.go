package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransactionFilter filtros y orden para listar traslados.
// SortBy admite "sequence" y "created_at" (lista blanca en el adaptador).
type TransactionFilter struct {
	Kind        string
	Status      string
	WarehouseID string // coincide con origen o destino
	SortBy      string
	SortDesc    bool
}

// WarehouseTransactionRepository define el puerto de persistencia del
// agregado traslado + líneas. Las líneas se crean y reemplazan siempre como
// parte de su transacción, nunca de forma independiente.
type WarehouseTransactionRepository interface {
	Create(t *entity.WarehouseTransaction, items []*entity.TransactionItem) error
	GetByID(id string) (*entity.WarehouseTransaction, error)
	// Items devuelve todas las líneas de un traslado (para la máquina de estados).
	Items(transactionID string) ([]*entity.TransactionItem, error)
	// UpdateHeader persiste la cabecera (estado, bodegas, auditoría).
	UpdateHeader(t *entity.WarehouseTransaction) error
	// ReplaceItems elimina las líneas actuales e inserta las nuevas (edición).
	ReplaceItems(transactionID string, items []*entity.TransactionItem) error
	// UpdateItemReceived fija la cantidad recibida de una línea.
	UpdateItemReceived(itemID string, received int64) error
	// List lista traslados filtrados/ordenados con total para paginación.
	List(f TransactionFilter, limit, offset int) ([]*entity.WarehouseTransaction, int, error)
	// ItemsPage proyección paginada de líneas con datos de producto.
	ItemsPage(transactionID string, limit, offset int) ([]*entity.TransactionItemView, int, error)
}
