package transactions

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Get devuelve un traslado con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.WarehouseTransaction, []*entity.TransactionItem, error) {
	t, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.txRepo.Items(id)
	if err != nil {
		return nil, nil, err
	}
	return t, items, nil
}

// List lista traslados filtrados y ordenados, con total para paginación.
func (uc *UseCase) List(ctx context.Context, f repository.TransactionFilter, limit, offset int) ([]*entity.WarehouseTransaction, int, error) {
	return uc.txRepo.List(f, limit, offset)
}

// ListItems lista las líneas de un traslado proyectadas con datos de catálogo.
func (uc *UseCase) ListItems(ctx context.Context, transactionID string, limit, offset int) ([]*entity.TransactionItemView, int, error) {
	t, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, 0, err
	}
	if t == nil {
		return nil, 0, domain.ErrNotFound
	}
	return uc.txRepo.ItemsPage(transactionID, limit, offset)
}

// Stock lee el contador de un producto en una bodega (par ausente = cero).
func (uc *UseCase) Stock(ctx context.Context, productID, warehouseID string) (*entity.QuantityRecord, error) {
	return uc.qtyRepo.Get(productID, warehouseID)
}

// StockByWarehouse proyección de existencias de una bodega.
func (uc *UseCase) StockByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.QuantityRecord, error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return uc.qtyRepo.ListByWarehouse(warehouseID, limit, offset)
}
