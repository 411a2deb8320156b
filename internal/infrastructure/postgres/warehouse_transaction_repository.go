package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseTransactionRepository = (*WarehouseTransactionRepo)(nil)

// WarehouseTransactionRepo implementación del puerto del agregado traslado +
// líneas sobre PostgreSQL. Las bodegas opcionales y los campos de auditoría
// se guardan como NULL cuando están vacíos (NULLIF/COALESCE en las queries).
type WarehouseTransactionRepo struct {
	q Querier
}

// NewWarehouseTransactionRepository construye el adaptador de persistencia de traslados.
func NewWarehouseTransactionRepository(q Querier) *WarehouseTransactionRepo {
	return &WarehouseTransactionRepo{q: q}
}

const transactionColumns = `
	id, sequence, kind,
	COALESCE(source_warehouse_id, ''), COALESCE(destination_warehouse_id, ''),
	requires_receiving, status, accepted, COALESCE(comment, ''),
	created_by, COALESCE(accepted_by, ''), COALESCE(cancelled_by, ''),
	created_at, accepted_at, cancelled_at`

// Create persiste cabecera y líneas de un traslado nuevo.
func (r *WarehouseTransactionRepo) Create(t *entity.WarehouseTransaction, items []*entity.TransactionItem) error {
	query := `
		INSERT INTO warehouse_transactions (
			id, sequence, kind, source_warehouse_id, destination_warehouse_id,
			requires_receiving, status, accepted, comment,
			created_by, accepted_by, cancelled_by, created_at, accepted_at, cancelled_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''),
			$10, NULLIF($11, ''), NULLIF($12, ''), $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Sequence, t.Kind, t.SourceWarehouseID, t.DestinationWarehouseID,
		t.RequiresReceiving, t.Status, t.Accepted, t.Comment,
		t.CreatedBy, t.AcceptedBy, t.CancelledBy, t.CreatedAt, t.AcceptedAt, t.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertItems(items)
}

// GetByID obtiene la cabecera de un traslado; nil si no existe.
func (r *WarehouseTransactionRepo) GetByID(id string) (*entity.WarehouseTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM warehouse_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// Items devuelve todas las líneas de un traslado.
func (r *WarehouseTransactionRepo) Items(transactionID string) ([]*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, requested_quantity, received_quantity
		FROM transaction_items WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.RequestedQuantity, &it.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateHeader persiste la cabecera completa (estado, bodegas, auditoría).
func (r *WarehouseTransactionRepo) UpdateHeader(t *entity.WarehouseTransaction) error {
	query := `
		UPDATE warehouse_transactions SET
			kind = $2, source_warehouse_id = NULLIF($3, ''), destination_warehouse_id = NULLIF($4, ''),
			requires_receiving = $5, status = $6, accepted = $7, comment = NULLIF($8, ''),
			accepted_by = NULLIF($9, ''), cancelled_by = NULLIF($10, ''),
			accepted_at = $11, cancelled_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, t.Kind, t.SourceWarehouseID, t.DestinationWarehouseID,
		t.RequiresReceiving, t.Status, t.Accepted, t.Comment,
		t.AcceptedBy, t.CancelledBy, t.AcceptedAt, t.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update transaction %s: no existe", t.ID)
	}
	return nil
}

// ReplaceItems elimina las líneas actuales e inserta las nuevas (edición).
func (r *WarehouseTransactionRepo) ReplaceItems(transactionID string, items []*entity.TransactionItem) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return r.insertItems(items)
}

// UpdateItemReceived fija la cantidad recibida de una línea.
func (r *WarehouseTransactionRepo) UpdateItemReceived(itemID string, received int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE transaction_items SET received_quantity = $2 WHERE id = $1`, itemID, received)
	if err != nil {
		return fmt.Errorf("update item received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update item %s: no existe", itemID)
	}
	return nil
}

// List lista traslados filtrados y ordenados, con total para paginación.
func (r *WarehouseTransactionRepo) List(f repository.TransactionFilter, limit, offset int) ([]*entity.WarehouseTransaction, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Kind != "" {
		conds = append(conds, "kind = "+arg(f.Kind))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.WarehouseID != "" {
		p := arg(f.WarehouseID)
		conds = append(conds, fmt.Sprintf("(source_warehouse_id = %s OR destination_warehouse_id = %s)", p, p))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM warehouse_transactions` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Lista blanca de columnas de orden: nunca interpolar entrada del cliente.
	orderCol := "sequence"
	if f.SortBy == "created_at" {
		orderCol = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := `SELECT ` + transactionColumns + ` FROM warehouse_transactions` + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT %s OFFSET %s", orderCol, dir, arg(limit), arg(offset))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// ItemsPage proyección paginada de líneas con datos de producto.
func (r *WarehouseTransactionRepo) ItemsPage(transactionID string, limit, offset int) ([]*entity.TransactionItemView, int, error) {
	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transaction_items WHERE transaction_id = $1`, transactionID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	query := `
		SELECT i.id, i.transaction_id, i.product_id, i.requested_quantity, i.received_quantity,
		       p.sku, p.name
		FROM transaction_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.transaction_id = $1
		ORDER BY p.sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, transactionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list item views: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItemView
	for rows.Next() {
		var v entity.TransactionItemView
		if err := rows.Scan(&v.ID, &v.TransactionID, &v.ProductID, &v.RequestedQuantity, &v.ReceivedQuantity,
			&v.ProductSKU, &v.ProductName); err != nil {
			return nil, 0, fmt.Errorf("scan item view: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}

func (r *WarehouseTransactionRepo) insertItems(items []*entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, requested_quantity, received_quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if _, err := r.q.Exec(context.Background(), query,
			it.ID, it.TransactionID, it.ProductID, it.RequestedQuantity, it.ReceivedQuantity); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.WarehouseTransaction, error) {
	var t entity.WarehouseTransaction
	err := row.Scan(
		&t.ID, &t.Sequence, &t.Kind,
		&t.SourceWarehouseID, &t.DestinationWarehouseID,
		&t.RequiresReceiving, &t.Status, &t.Accepted, &t.Comment,
		&t.CreatedBy, &t.AcceptedBy, &t.CancelledBy,
		&t.CreatedAt, &t.AcceptedAt, &t.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
