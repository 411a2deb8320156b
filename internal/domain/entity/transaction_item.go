package entity

// TransactionItem es una línea de un traslado de bodega. Pertenece a su
// transacción y solo se elimina como consecuencia de ella, nunca de forma
// independiente.
type TransactionItem struct {
	ID                string
	TransactionID     string
	ProductID         string
	RequestedQuantity int64 // fijada al crear/editar, siempre > 0
	ReceivedQuantity  int64 // mutada solo por el paso de recepción
}

// TransactionItemView proyección de lectura de una línea con los datos de
// catálogo del producto (solo para listados, nunca para la máquina de estados).
type TransactionItemView struct {
	TransactionItem
	ProductSKU  string
	ProductName string
}
