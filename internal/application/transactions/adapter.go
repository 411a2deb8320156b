package transactions

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateFromRequest adapta el request HTTP al caso de uso Create.
func (uc *UseCase) CreateFromRequest(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	t, items, err := uc.Create(ctx, userID, toInput(in))
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(t, items), nil
}

// EditFromRequest adapta el request HTTP al caso de uso Edit.
func (uc *UseCase) EditFromRequest(ctx context.Context, userID, id string, in dto.EditTransactionRequest) (*dto.TransactionResponse, error) {
	t, items, err := uc.Edit(ctx, userID, id, toInput(in))
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(t, items), nil
}

// ReceiveFromRequest adapta el request HTTP al caso de uso Receive.
func (uc *UseCase) ReceiveFromRequest(ctx context.Context, userID, id string, in dto.ReceiveTransactionRequest) (*dto.TransactionResponse, error) {
	received := make([]ReceiveItemInput, 0, len(in.Items))
	for _, r := range in.Items {
		received = append(received, ReceiveItemInput{ItemID: r.ID, ReceivedQuantity: r.ReceivedQuantity})
	}
	t, items, err := uc.Receive(ctx, userID, id, received)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(t, items), nil
}

func toInput(in dto.CreateTransactionRequest) TransactionInput {
	items := make([]ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return TransactionInput{
		Kind:                   in.Kind,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		RequiresReceiving:      in.RequiresReceiving,
		Comment:                in.Comment,
		Items:                  items,
	}
}

// ToTransactionResponse proyecta cabecera y líneas a la respuesta HTTP.
func ToTransactionResponse(t *entity.WarehouseTransaction, items []*entity.TransactionItem) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:                     t.ID,
		Sequence:               t.Sequence,
		Kind:                   t.Kind,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		RequiresReceiving:      t.RequiresReceiving,
		Status:                 t.Status,
		Accepted:               t.Accepted,
		Comment:                t.Comment,
		CreatedBy:              t.CreatedBy,
		AcceptedBy:             t.AcceptedBy,
		CancelledBy:            t.CancelledBy,
		CreatedAt:              t.CreatedAt,
		AcceptedAt:             t.AcceptedAt,
		CancelledAt:            t.CancelledAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.TransactionItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			RequestedQuantity: it.RequestedQuantity,
			ReceivedQuantity:  it.ReceivedQuantity,
		})
	}
	return out
}

// ToItemResponses proyecta líneas con datos de catálogo para listados.
func ToItemResponses(views []*entity.TransactionItemView) []dto.TransactionItemResponse {
	out := make([]dto.TransactionItemResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.TransactionItemResponse{
			ID:                v.ID,
			ProductID:         v.ProductID,
			ProductSKU:        v.ProductSKU,
			ProductName:       v.ProductName,
			RequestedQuantity: v.RequestedQuantity,
			ReceivedQuantity:  v.ReceivedQuantity,
		})
	}
	return out
}

// ToTransactionResponses proyecta cabeceras para listados (sin líneas).
func ToTransactionResponses(list []*entity.WarehouseTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *ToTransactionResponse(t, nil))
	}
	return out
}

// ToStockResponses proyecta registros del libro con disponibilidad derivada.
func ToStockResponses(records []*entity.QuantityRecord) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(records))
	for _, q := range records {
		out = append(out, ToStockResponse(q))
	}
	return out
}

// ToStockResponse proyecta un registro del libro.
func ToStockResponse(q *entity.QuantityRecord) dto.StockResponse {
	return dto.StockResponse{
		ProductID:    q.ProductID,
		WarehouseID:  q.WarehouseID,
		Quantity:     q.Quantity,
		Availability: q.Availability(),
		UpdatedAt:    q.UpdatedAt,
	}
}
