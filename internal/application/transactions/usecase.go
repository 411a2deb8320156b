package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ámbito del contador de secuencia para traslados.
const sequenceScope = "warehouse_transactions"

// UseCase orquesta la máquina de estados de los traslados de bodega:
// crear, editar, cancelar y recibir, con sus efectos compensatorios sobre
// el libro de existencias. Toda mutación corre dentro de una transacción
// SQL (TxRunner) para que los ajustes multi-línea sean atómicos.
type UseCase struct {
	txRunner      TxRunner
	txRepo        repository.WarehouseTransactionRepository
	qtyRepo       repository.QuantityRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner TxRunner,
	txRepo repository.WarehouseTransactionRepository,
	qtyRepo repository.QuantityRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		txRepo:        txRepo,
		qtyRepo:       qtyRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ItemInput línea solicitada de un traslado.
type ItemInput struct {
	ProductID string
	Quantity  int64
}

// TransactionInput entrada para crear o editar un traslado.
type TransactionInput struct {
	Kind                   string
	SourceWarehouseID      string
	DestinationWarehouseID string
	RequiresReceiving      bool
	Comment                string
	Items                  []ItemInput
}

// ReceiveItemInput cantidad recibida de una línea existente.
type ReceiveItemInput struct {
	ItemID           string
	ReceivedQuantity int64
}

// Create valida referencias, asigna la secuencia y persiste el traslado
// aplicando sus efectos inmediatos: débito del origen (outbound/transfer)
// siempre; crédito del destino (inbound/transfer) solo si no requiere
// recepción. Estado resultante: confirmed o awaiting.
func (uc *UseCase) Create(ctx context.Context, userID string, input TransactionInput) (*entity.WarehouseTransaction, []*entity.TransactionItem, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, nil, err
	}
	if err := uc.resolveReferences(input); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	t := &entity.WarehouseTransaction{
		ID:                     uuid.New().String(),
		Kind:                   input.Kind,
		SourceWarehouseID:      input.SourceWarehouseID,
		DestinationWarehouseID: input.DestinationWarehouseID,
		RequiresReceiving:      input.RequiresReceiving,
		Status:                 statusAfterApply(input.RequiresReceiving),
		Comment:                input.Comment,
		CreatedBy:              userID,
		CreatedAt:              now,
	}
	items := buildItems(t.ID, input.Items)

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.WarehouseTransactionRepository,
		qtyRepo repository.QuantityRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(sequenceScope)
		if err != nil {
			return fmt.Errorf("asignar secuencia: %w", err)
		}
		t.Sequence = seq
		if err := txRepo.Create(t, items); err != nil {
			return err
		}
		return applyDeltas(qtyRepo, t.LedgerEffects(items))
	})
	if err != nil {
		return nil, nil, err
	}
	return t, items, nil
}

// Edit reemplaza cabecera y líneas de un traslado no terminal. Primero
// revierte TODOS los efectos ya aplicados usando los valores previamente
// comprometidos (bodegas, cantidades y flags originales) y después aplica
// los efectos nuevos con las reglas de creación; ese orden evita el doble
// conteo cuando cambian destino o cantidades a mitad de flujo.
func (uc *UseCase) Edit(ctx context.Context, userID, id string, input TransactionInput) (*entity.WarehouseTransaction, []*entity.TransactionItem, error) {
	t, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !t.CanEdit() {
		return nil, nil, fmt.Errorf("%w: no se puede editar un traslado %s", domain.ErrInvalidTransition, t.Status)
	}
	if err := uc.validateInput(input); err != nil {
		return nil, nil, err
	}
	if err := uc.resolveReferences(input); err != nil {
		return nil, nil, err
	}

	newItems := buildItems(t.ID, input.Items)
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.WarehouseTransactionRepository,
		qtyRepo repository.QuantityRepository,
		_ repository.SequenceRepository,
	) error {
		oldItems, err := txRepo.Items(t.ID)
		if err != nil {
			return err
		}
		// Reversión completa antes de cualquier reaplicación.
		if err := applyDeltas(qtyRepo, entity.InverseDeltas(t.LedgerEffects(oldItems))); err != nil {
			return err
		}
		t.Kind = input.Kind
		t.SourceWarehouseID = input.SourceWarehouseID
		t.DestinationWarehouseID = input.DestinationWarehouseID
		t.RequiresReceiving = input.RequiresReceiving
		t.Comment = input.Comment
		t.Status = statusAfterApply(input.RequiresReceiving)
		if err := txRepo.ReplaceItems(t.ID, newItems); err != nil {
			return err
		}
		if err := txRepo.UpdateHeader(t); err != nil {
			return err
		}
		return applyDeltas(qtyRepo, t.LedgerEffects(newItems))
	})
	if err != nil {
		return nil, nil, err
	}
	return t, newItems, nil
}

// Cancel cancela cada traslado revirtiendo sus efectos aplicados: inbound
// revierte el crédito del destino, outbound devuelve el débito del origen y
// transfer siempre devuelve el origen y revierte el destino solo si ya fue
// aceptado. Cada id se procesa en su propia transacción SQL; ante una falla
// los anteriores quedan cancelados y se propaga el error.
func (uc *UseCase) Cancel(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids vacío", domain.ErrInvalidInput)
	}
	for _, id := range ids {
		t, err := uc.txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if !t.CanCancel() {
			return fmt.Errorf("%w: el traslado %s ya está cancelado", domain.ErrInvalidTransition, id)
		}
		err = uc.txRunner.Run(ctx, func(
			txRepo repository.WarehouseTransactionRepository,
			qtyRepo repository.QuantityRepository,
			_ repository.SequenceRepository,
		) error {
			items, err := txRepo.Items(t.ID)
			if err != nil {
				return err
			}
			if err := applyDeltas(qtyRepo, entity.InverseDeltas(t.LedgerEffects(items))); err != nil {
				return err
			}
			now := time.Now()
			t.Status = entity.StatusCancelled
			t.CancelledBy = userID
			t.CancelledAt = &now
			return txRepo.UpdateHeader(t)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Receive completa la recepción de un traslado awaiting: persiste la
// cantidad recibida por línea (las omitidas reciben cero), acredita el
// destino con lo RECIBIDO (no lo solicitado) y marca received/accepted.
// Recibir más de lo solicitado se rechaza antes de tocar el libro.
func (uc *UseCase) Receive(ctx context.Context, userID, id string, received []ReceiveItemInput) (*entity.WarehouseTransaction, []*entity.TransactionItem, error) {
	t, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !t.CanReceive() {
		return nil, nil, fmt.Errorf("%w: no se puede recibir un traslado %s", domain.ErrInvalidTransition, t.Status)
	}
	byItem := make(map[string]int64, len(received))
	for _, r := range received {
		if r.ReceivedQuantity < 0 {
			return nil, nil, fmt.Errorf("%w: cantidad recibida negativa", domain.ErrInvalidInput)
		}
		byItem[r.ItemID] = r.ReceivedQuantity
	}

	var items []*entity.TransactionItem
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.WarehouseTransactionRepository,
		qtyRepo repository.QuantityRepository,
		_ repository.SequenceRepository,
	) error {
		items, err = txRepo.Items(t.ID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(items))
		for _, it := range items {
			known[it.ID] = true
		}
		for itemID := range byItem {
			if !known[itemID] {
				return fmt.Errorf("%w: línea %s", domain.ErrNotFound, itemID)
			}
		}
		// Validar sobre-recepción antes de aplicar cualquier ajuste.
		for _, it := range items {
			if q := byItem[it.ID]; q > it.RequestedQuantity {
				return fmt.Errorf("%w: recibido %d excede lo solicitado %d", domain.ErrInvalidInput, q, it.RequestedQuantity)
			}
		}
		for _, it := range items {
			q := byItem[it.ID]
			it.ReceivedQuantity = q
			if err := txRepo.UpdateItemReceived(it.ID, q); err != nil {
				return err
			}
			if q == 0 {
				continue
			}
			if _, err := qtyRepo.Adjust(it.ProductID, t.DestinationWarehouseID, q); err != nil {
				return fmt.Errorf("%w: acreditar (%s, %s): %v", domain.ErrLedgerFailure, it.ProductID, t.DestinationWarehouseID, err)
			}
		}
		now := time.Now()
		t.Status = entity.StatusReceived
		t.Accepted = true
		t.AcceptedBy = userID
		t.AcceptedAt = &now
		return txRepo.UpdateHeader(t)
	})
	if err != nil {
		return nil, nil, err
	}
	return t, items, nil
}

// validateInput verifica tipo, bodegas exigidas por el tipo y líneas.
func (uc *UseCase) validateInput(input TransactionInput) error {
	if !entity.ValidKind(input.Kind) {
		return fmt.Errorf("%w: kind %q", domain.ErrInvalidInput, input.Kind)
	}
	if entity.KindNeedsSource(input.Kind) && input.SourceWarehouseID == "" {
		return fmt.Errorf("%w: %s requiere bodega origen", domain.ErrInvalidReference, input.Kind)
	}
	if !entity.KindNeedsSource(input.Kind) && input.SourceWarehouseID != "" {
		return fmt.Errorf("%w: %s no admite bodega origen", domain.ErrInvalidInput, input.Kind)
	}
	if entity.KindNeedsDestination(input.Kind) && input.DestinationWarehouseID == "" {
		return fmt.Errorf("%w: %s requiere bodega destino", domain.ErrInvalidReference, input.Kind)
	}
	if !entity.KindNeedsDestination(input.Kind) && input.DestinationWarehouseID != "" {
		return fmt.Errorf("%w: %s no admite bodega destino", domain.ErrInvalidInput, input.Kind)
	}
	if input.Kind == entity.KindTransfer && input.SourceWarehouseID == input.DestinationWarehouseID {
		return fmt.Errorf("%w: origen y destino no pueden ser la misma bodega", domain.ErrInvalidInput)
	}
	if input.RequiresReceiving && input.DestinationWarehouseID == "" {
		return fmt.Errorf("%w: la recepción exige bodega destino", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: el traslado no tiene líneas", domain.ErrInvalidInput)
	}
	for _, it := range input.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad solicitada debe ser positiva", domain.ErrInvalidInput)
		}
	}
	return nil
}

// resolveReferences verifica que bodegas y productos referenciados existan.
// El catálogo se consulta solo para validar, nunca decide la máquina de estados.
func (uc *UseCase) resolveReferences(input TransactionInput) error {
	for _, whID := range []string{input.SourceWarehouseID, input.DestinationWarehouseID} {
		if whID == "" {
			continue
		}
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrInvalidReference, whID)
		}
	}
	for _, it := range input.Items {
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrInvalidReference, it.ProductID)
		}
	}
	return nil
}

func statusAfterApply(requiresReceiving bool) string {
	if requiresReceiving {
		return entity.StatusAwaiting
	}
	return entity.StatusConfirmed
}

func buildItems(transactionID string, inputs []ItemInput) []*entity.TransactionItem {
	items := make([]*entity.TransactionItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, &entity.TransactionItem{
			ID:                uuid.New().String(),
			TransactionID:     transactionID,
			ProductID:         in.ProductID,
			RequestedQuantity: in.Quantity,
		})
	}
	return items
}

// applyDeltas emite los ajustes de una mutación. Las líneas son independientes
// entre sí; el único orden que importa (reversión antes de reaplicación en
// Edit) lo garantiza el caller.
func applyDeltas(qtyRepo repository.QuantityRepository, deltas []entity.QuantityDelta) error {
	for _, d := range deltas {
		if _, err := qtyRepo.Adjust(d.ProductID, d.WarehouseID, d.Delta); err != nil {
			return fmt.Errorf("%w: ajustar (%s, %s): %v", domain.ErrLedgerFailure, d.ProductID, d.WarehouseID, err)
		}
	}
	return nil
}
