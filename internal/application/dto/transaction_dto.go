package dto

import "time"

// TransactionItemRequest línea solicitada de un traslado.
type TransactionItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateTransactionRequest body para POST /api/transactions.
// source_warehouse_id es obligatorio para outbound/transfer y
// destination_warehouse_id para inbound/transfer.
type CreateTransactionRequest struct {
	Kind                   string                   `json:"kind" validate:"required,oneof=inbound outbound transfer"`
	SourceWarehouseID      string                   `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string                   `json:"destination_warehouse_id,omitempty"`
	RequiresReceiving      bool                     `json:"requires_receiving"`
	Comment                string                   `json:"comment"`
	Items                  []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// EditTransactionRequest body para PUT /api/transactions/{id}. Misma forma que
// la creación: las líneas nuevas reemplazan por completo a las anteriores.
type EditTransactionRequest = CreateTransactionRequest

// CancelTransactionsRequest body para POST /api/transactions/cancel.
type CancelTransactionsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// ReceiveItemRequest cantidad recibida de una línea existente.
type ReceiveItemRequest struct {
	ID               string `json:"id" validate:"required,uuid"`
	ReceivedQuantity int64  `json:"received_quantity" validate:"min=0"`
}

// ReceiveTransactionRequest body para POST /api/transactions/{id}/receive.
// Las líneas omitidas se reciben con cantidad cero.
type ReceiveTransactionRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// TransactionItemResponse salida de una línea con proyección de catálogo.
type TransactionItemResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	ProductSKU        string `json:"product_sku,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	RequestedQuantity int64  `json:"requested_quantity"`
	ReceivedQuantity  int64  `json:"received_quantity"`
}

// TransactionResponse salida de un traslado.
type TransactionResponse struct {
	ID                     string                    `json:"id"`
	Sequence               int64                     `json:"sequence"`
	Kind                   string                    `json:"kind"`
	SourceWarehouseID      string                    `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string                    `json:"destination_warehouse_id,omitempty"`
	RequiresReceiving      bool                      `json:"requires_receiving"`
	Status                 string                    `json:"status"`
	Accepted               bool                      `json:"accepted"`
	Comment                string                    `json:"comment,omitempty"`
	CreatedBy              string                    `json:"created_by,omitempty"`
	AcceptedBy             string                    `json:"accepted_by,omitempty"`
	CancelledBy            string                    `json:"cancelled_by,omitempty"`
	CreatedAt              time.Time                 `json:"created_at"`
	AcceptedAt             *time.Time                `json:"accepted_at,omitempty"`
	CancelledAt            *time.Time                `json:"cancelled_at,omitempty"`
	Items                  []TransactionItemResponse `json:"items,omitempty"`
}

// TransactionListResponse lista paginada de traslados.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// TransactionItemListResponse lista paginada de líneas de un traslado.
type TransactionItemListResponse struct {
	Items []TransactionItemResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// StockResponse existencias de un producto en una bodega con disponibilidad derivada.
type StockResponse struct {
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	Quantity     int64     `json:"quantity"`
	Availability string    `json:"availability"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockListResponse existencias de una bodega, paginadas.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BarcodeDraftItem línea sugerida al resolver un código de barras.
type BarcodeDraftItem struct {
	ProductID   string `json:"product_id"`
	ProductSKU  string `json:"product_sku"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// BarcodeDraftResponse líneas para prellenar un borrador de traslado.
type BarcodeDraftResponse struct {
	Code  string             `json:"code"`
	Items []BarcodeDraftItem `json:"items"`
}
