package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.BarcodeRepository = (*BarcodeRepo)(nil)

// BarcodeRepo resuelve códigos escaneados a líneas de producto. Un mismo
// código puede mapear a varias filas (paquetes, combos).
type BarcodeRepo struct {
	q Querier
}

// NewBarcodeRepository construye el adaptador de códigos de barras.
func NewBarcodeRepository(q Querier) *BarcodeRepo {
	return &BarcodeRepo{q: q}
}

// FindByCode devuelve las líneas asociadas a un código, con datos de catálogo.
func (r *BarcodeRepo) FindByCode(code string) ([]*entity.BarcodeLine, error) {
	query := `
		SELECT b.code, b.product_id, p.sku, p.name, b.quantity
		FROM barcodes b
		JOIN products p ON p.id = b.product_id
		WHERE b.code = $1
		ORDER BY p.sku`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("find barcode: %w", err)
	}
	defer rows.Close()
	var list []*entity.BarcodeLine
	for rows.Next() {
		var line entity.BarcodeLine
		if err := rows.Scan(&line.Code, &line.ProductID, &line.ProductSKU, &line.ProductName, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan barcode line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}
