package transactions_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	transactions map[string]entity.WarehouseTransaction
	items        map[string][]entity.TransactionItem
	quantities   map[string]int64 // "productID@warehouseID" -> cantidad
	sequences    map[string]int64
	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
	adjustErr    error // si se setea, Adjust falla
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transactions: make(map[string]entity.WarehouseTransaction),
		items:        make(map[string][]entity.TransactionItem),
		quantities:   make(map[string]int64),
		sequences:    make(map[string]int64),
		products:     make(map[string]entity.Product),
		warehouses:   make(map[string]entity.Warehouse),
	}
}

func qtyKey(productID, warehouseID string) string { return productID + "@" + warehouseID }

// ── WarehouseTransactionRepository ────────────────────────────────────────────

type fakeTxRepo struct{ s *fakeStore }

func (r *fakeTxRepo) Create(t *entity.WarehouseTransaction, items []*entity.TransactionItem) error {
	r.s.transactions[t.ID] = *t
	return r.ReplaceItems(t.ID, items)
}

func (r *fakeTxRepo) GetByID(id string) (*entity.WarehouseTransaction, error) {
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *fakeTxRepo) Items(transactionID string) ([]*entity.TransactionItem, error) {
	var out []*entity.TransactionItem
	for _, it := range r.s.items[transactionID] {
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTxRepo) UpdateHeader(t *entity.WarehouseTransaction) error {
	if _, ok := r.s.transactions[t.ID]; !ok {
		return fmt.Errorf("transacción %s no existe", t.ID)
	}
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *fakeTxRepo) ReplaceItems(transactionID string, items []*entity.TransactionItem) error {
	stored := make([]entity.TransactionItem, 0, len(items))
	for _, it := range items {
		stored = append(stored, *it)
	}
	r.s.items[transactionID] = stored
	return nil
}

func (r *fakeTxRepo) UpdateItemReceived(itemID string, received int64) error {
	for txID, list := range r.s.items {
		for i := range list {
			if list[i].ID == itemID {
				list[i].ReceivedQuantity = received
				r.s.items[txID] = list
				return nil
			}
		}
	}
	return fmt.Errorf("línea %s no existe", itemID)
}

func (r *fakeTxRepo) List(f repository.TransactionFilter, limit, offset int) ([]*entity.WarehouseTransaction, int, error) {
	var out []*entity.WarehouseTransaction
	for id := range r.s.transactions {
		t := r.s.transactions[id]
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.WarehouseID != "" && t.SourceWarehouseID != f.WarehouseID && t.DestinationWarehouseID != f.WarehouseID {
			continue
		}
		cp := t
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeTxRepo) ItemsPage(transactionID string, limit, offset int) ([]*entity.TransactionItemView, int, error) {
	items, _ := r.Items(transactionID)
	var out []*entity.TransactionItemView
	for _, it := range items {
		out = append(out, &entity.TransactionItemView{TransactionItem: *it})
	}
	return out, len(out), nil
}

// ── QuantityRepository ────────────────────────────────────────────────────────

type fakeQtyRepo struct{ s *fakeStore }

func (r *fakeQtyRepo) Adjust(productID, warehouseID string, delta int64) (int64, error) {
	if r.s.adjustErr != nil {
		return 0, r.s.adjustErr
	}
	key := qtyKey(productID, warehouseID)
	r.s.quantities[key] += delta
	return r.s.quantities[key], nil
}

func (r *fakeQtyRepo) Get(productID, warehouseID string) (*entity.QuantityRecord, error) {
	return &entity.QuantityRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    r.s.quantities[qtyKey(productID, warehouseID)],
		UpdatedAt:   time.Now(),
	}, nil
}

func (r *fakeQtyRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.QuantityRecord, error) {
	var out []*entity.QuantityRecord
	for key, qty := range r.s.quantities {
		productID, whID, ok := strings.Cut(key, "@")
		if !ok || whID != warehouseID {
			continue
		}
		out = append(out, &entity.QuantityRecord{ProductID: productID, WarehouseID: whID, Quantity: qty})
	}
	return out, nil
}

// ── SequenceRepository ────────────────────────────────────────────────────────

type fakeSeqRepo struct{ s *fakeStore }

func (r *fakeSeqRepo) Next(scope string) (int64, error) {
	r.s.sequences[scope]++
	return r.s.sequences[scope], nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for id := range r.s.products {
		if r.s.products[id].SKU == sku {
			p := r.s.products[id]
			return &p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = *w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.s.warehouses[w.ID] = *w; return nil }
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.s.warehouses, id)
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	txRepo repository.WarehouseTransactionRepository,
	qtyRepo repository.QuantityRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	return fn(&fakeTxRepo{s: r.s}, &fakeQtyRepo{s: r.s}, &fakeSeqRepo{s: r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	userID  = "user-1"
	whSrc   = "wh-src"
	whDst   = "wh-dst"
	prodOne = "prod-1"
	prodTwo = "prod-2"
)

func newUseCase(t *testing.T) (*transactions.UseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.warehouses[whSrc] = entity.Warehouse{ID: whSrc, Name: "Bodega Central"}
	s.warehouses[whDst] = entity.Warehouse{ID: whDst, Name: "Bodega Norte"}
	s.products[prodOne] = entity.Product{ID: prodOne, SKU: "SKU-1", Name: "Tornillo"}
	s.products[prodTwo] = entity.Product{ID: prodTwo, SKU: "SKU-2", Name: "Tuerca"}
	uc := transactions.NewUseCase(
		&fakeTxRunner{s: s},
		&fakeTxRepo{s: s},
		&fakeQtyRepo{s: s},
		&fakeProductRepo{s: s},
		&fakeWarehouseRepo{s: s},
	)
	return uc, s
}

func qty(s *fakeStore, productID, warehouseID string) int64 {
	return s.quantities[qtyKey(productID, warehouseID)]
}

func transferInput(requiresReceiving bool, quantity int64) transactions.TransactionInput {
	return transactions.TransactionInput{
		Kind:                   entity.KindTransfer,
		SourceWarehouseID:      whSrc,
		DestinationWarehouseID: whDst,
		RequiresReceiving:      requiresReceiving,
		Items:                  []transactions.ItemInput{{ProductID: prodOne, Quantity: quantity}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OutboundDebitaOrigen(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transactions.TransactionInput{
		Kind:              entity.KindOutbound,
		SourceWarehouseID: whSrc,
		Items:             []transactions.ItemInput{{ProductID: prodOne, Quantity: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, tx.Status)
	assert.Equal(t, int64(-5), qty(s, prodOne, whSrc),
		"el origen debe quedar debitado aunque el resultado sea negativo")
	assert.Equal(t, userID, tx.CreatedBy)
}

func TestCreate_InboundSinRecepcionAcreditaDestino(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transactions.TransactionInput{
		Kind:                   entity.KindInbound,
		DestinationWarehouseID: whDst,
		Items:                  []transactions.ItemInput{{ProductID: prodOne, Quantity: 7}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, tx.Status)
	assert.Equal(t, int64(7), qty(s, prodOne, whDst))
}

func TestCreate_TransferConRecepcionQuedaAwaiting(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transferInput(true, 4))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAwaiting, tx.Status)
	assert.Equal(t, int64(-4), qty(s, prodOne, whSrc), "el origen se debita de inmediato")
	assert.Zero(t, qty(s, prodOne, whDst), "el destino no se acredita hasta recibir")
}

func TestCreate_TransferSinRecepcionMueveAmbosLados(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transferInput(false, 4))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, tx.Status)
	assert.Equal(t, int64(-4), qty(s, prodOne, whSrc))
	assert.Equal(t, int64(4), qty(s, prodOne, whDst))
}

func TestCreate_SecuenciaMonotonica(t *testing.T) {
	uc, _ := newUseCase(t)
	first, _, err := uc.Create(context.Background(), userID, transferInput(false, 1))
	require.NoError(t, err)
	second, _, err := uc.Create(context.Background(), userID, transferInput(false, 1))
	require.NoError(t, err)

	assert.Equal(t, first.Sequence+1, second.Sequence,
		"la secuencia debe crecer de a uno por traslado")
}

func TestCreate_ValidacionesDeEntrada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		input   transactions.TransactionInput
		wantErr error
	}{
		{
			name:    "tipo desconocido",
			input:   transactions.TransactionInput{Kind: "ajuste"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "outbound sin origen",
			input: transactions.TransactionInput{
				Kind:  entity.KindOutbound,
				Items: []transactions.ItemInput{{ProductID: prodOne, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidReference,
		},
		{
			name: "inbound con origen",
			input: transactions.TransactionInput{
				Kind:                   entity.KindInbound,
				SourceWarehouseID:      whSrc,
				DestinationWarehouseID: whDst,
				Items:                  []transactions.ItemInput{{ProductID: prodOne, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "transfer con misma bodega",
			input: transactions.TransactionInput{
				Kind:                   entity.KindTransfer,
				SourceWarehouseID:      whSrc,
				DestinationWarehouseID: whSrc,
				Items:                  []transactions.ItemInput{{ProductID: prodOne, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "outbound con recepción",
			input: transactions.TransactionInput{
				Kind:              entity.KindOutbound,
				SourceWarehouseID: whSrc,
				RequiresReceiving: true,
				Items:             []transactions.ItemInput{{ProductID: prodOne, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "sin líneas",
			input: transactions.TransactionInput{
				Kind:              entity.KindOutbound,
				SourceWarehouseID: whSrc,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "cantidad no positiva",
			input: transactions.TransactionInput{
				Kind:              entity.KindOutbound,
				SourceWarehouseID: whSrc,
				Items:             []transactions.ItemInput{{ProductID: prodOne, Quantity: 0}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "bodega inexistente",
			input: transactions.TransactionInput{
				Kind:              entity.KindOutbound,
				SourceWarehouseID: "wh-fantasma",
				Items:             []transactions.ItemInput{{ProductID: prodOne, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidReference,
		},
		{
			name: "producto inexistente",
			input: transactions.TransactionInput{
				Kind:              entity.KindOutbound,
				SourceWarehouseID: whSrc,
				Items:             []transactions.ItemInput{{ProductID: "prod-fantasma", Quantity: 1}},
			},
			wantErr: domain.ErrInvalidReference,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Create(ctx, userID, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreate_FallaDelLibroPropagaErrLedgerFailure(t *testing.T) {
	uc, s := newUseCase(t)
	s.adjustErr = fmt.Errorf("conexión perdida")

	_, _, err := uc.Create(context.Background(), userID, transferInput(false, 3))
	assert.ErrorIs(t, err, domain.ErrLedgerFailure)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit — reversión completa antes de reaplicar
// ──────────────────────────────────────────────────────────────────────────────

func TestEdit_CambioDeCantidadNoDuplicaEfectos(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transferInput(false, 10))
	require.NoError(t, err)

	// Editar de 10 a 3: el efecto neto debe ser exactamente 3, no 13.
	input := transferInput(false, 3)
	_, _, err = uc.Edit(context.Background(), userID, tx.ID, input)
	require.NoError(t, err)

	assert.Equal(t, int64(-3), qty(s, prodOne, whSrc))
	assert.Equal(t, int64(3), qty(s, prodOne, whDst))
}

func TestEdit_CambioDeDestinoLimpiaElAnterior(t *testing.T) {
	uc, s := newUseCase(t)
	s.warehouses["wh-otra"] = entity.Warehouse{ID: "wh-otra", Name: "Bodega Sur"}

	tx, _, err := uc.Create(context.Background(), userID, transferInput(false, 5))
	require.NoError(t, err)

	input := transferInput(false, 5)
	input.DestinationWarehouseID = "wh-otra"
	_, _, err = uc.Edit(context.Background(), userID, tx.ID, input)
	require.NoError(t, err)

	assert.Zero(t, qty(s, prodOne, whDst), "el destino anterior debe quedar limpio")
	assert.Equal(t, int64(5), qty(s, prodOne, "wh-otra"))
	assert.Equal(t, int64(-5), qty(s, prodOne, whSrc))
}

func TestEdit_CambioDeProductos(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transactions.TransactionInput{
		Kind:              entity.KindOutbound,
		SourceWarehouseID: whSrc,
		Items:             []transactions.ItemInput{{ProductID: prodOne, Quantity: 8}},
	})
	require.NoError(t, err)

	_, _, err = uc.Edit(context.Background(), userID, tx.ID, transactions.TransactionInput{
		Kind:              entity.KindOutbound,
		SourceWarehouseID: whSrc,
		Items:             []transactions.ItemInput{{ProductID: prodTwo, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Zero(t, qty(s, prodOne, whSrc), "el producto eliminado recupera su existencia")
	assert.Equal(t, int64(-2), qty(s, prodTwo, whSrc))
}

func TestEdit_AwaitingReiniciaElFlujoDeRecepcion(t *testing.T) {
	uc, s := newUseCase(t)
	tx, _, err := uc.Create(context.Background(), userID, transferInput(true, 6))
	require.NoError(t, err)

	edited, _, err := uc.Edit(context.Background(), userID, tx.ID, transferInput(true, 9))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAwaiting, edited.Status)
	assert.Equal(t, int64(-9), qty(s, prodOne, whSrc))
	assert.Zero(t, qty(s, prodOne, whDst))
}

func TestEdit_EstadosTerminalesRechazados(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transferInput(false, 2))
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))

	_, _, err = uc.Edit(ctx, userID, tx.ID, transferInput(false, 2))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un traslado cancelado no se edita")
}

func TestEdit_RecibidoRechazado(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 5))
	require.NoError(t, err)
	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 5},
	})
	require.NoError(t, err)

	_, _, err = uc.Edit(ctx, userID, tx.ID, transferInput(true, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "received es terminal para edición")
}

func TestEdit_NoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	_, _, err := uc.Edit(context.Background(), userID, "tx-fantasma", transferInput(false, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialAcreditaSoloLoRecibido(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 10))
	require.NoError(t, err)

	received, _, err := uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 6},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusReceived, received.Status)
	assert.True(t, received.Accepted)
	assert.Equal(t, userID, received.AcceptedBy)
	require.NotNil(t, received.AcceptedAt)
	assert.Equal(t, int64(-10), qty(s, prodOne, whSrc),
		"la diferencia 10-6 queda como merma implícita del origen")
	assert.Equal(t, int64(6), qty(s, prodOne, whDst))
}

func TestReceive_LineasOmitidasRecibenCero(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transactions.TransactionInput{
		Kind:                   entity.KindTransfer,
		SourceWarehouseID:      whSrc,
		DestinationWarehouseID: whDst,
		RequiresReceiving:      true,
		Items: []transactions.ItemInput{
			{ProductID: prodOne, Quantity: 4},
			{ProductID: prodTwo, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// Solo se reporta la primera línea; la segunda queda en cero.
	var first string
	for _, it := range items {
		if it.ProductID == prodOne {
			first = it.ID
		}
	}
	_, after, err := uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: first, ReceivedQuantity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), qty(s, prodOne, whDst))
	assert.Zero(t, qty(s, prodTwo, whDst))
	for _, it := range after {
		if it.ProductID == prodTwo {
			assert.Zero(t, it.ReceivedQuantity)
		}
	}
}

func TestReceive_SobreRecepcionRechazadaSinTocarElLibro(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 5))
	require.NoError(t, err)
	srcBefore := qty(s, prodOne, whSrc)

	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 6},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, srcBefore, qty(s, prodOne, whSrc))
	assert.Zero(t, qty(s, prodOne, whDst), "el rechazo no debe acreditar nada")

	stored, _ := (&fakeTxRepo{s: s}).GetByID(tx.ID)
	assert.Equal(t, entity.StatusAwaiting, stored.Status, "el traslado sigue awaiting")
}

func TestReceive_LineaDesconocidaRechazada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transferInput(true, 5))
	require.NoError(t, err)

	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: "item-fantasma", ReceivedQuantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_SoloDesdeAwaiting(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transferInput(false, 5))
	require.NoError(t, err)

	_, _, err = uc.Receive(ctx, userID, tx.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"un traslado confirmed no tiene paso de recepción")
}

func TestReceive_CantidadNegativaRechazada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 5))
	require.NoError(t, err)

	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: -1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel — compensación por estado comprometido
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_TransferAwaitingDevuelveElOrigen(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transferInput(true, 8))
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))

	assert.Zero(t, qty(s, prodOne, whSrc), "el débito del origen se revierte")
	assert.Zero(t, qty(s, prodOne, whDst), "el destino nunca fue acreditado")

	stored, _ := (&fakeTxRepo{s: s}).GetByID(tx.ID)
	assert.Equal(t, entity.StatusCancelled, stored.Status)
	assert.Equal(t, userID, stored.CancelledBy)
	require.NotNil(t, stored.CancelledAt)
}

func TestCancel_TransferRecibidoRevierteAmbosLados(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 10))
	require.NoError(t, err)
	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 6},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))

	assert.Zero(t, qty(s, prodOne, whSrc), "el origen recupera lo solicitado")
	assert.Zero(t, qty(s, prodOne, whDst), "el destino devuelve solo lo recibido")
}

func TestCancel_InboundRevierteElCredito(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transactions.TransactionInput{
		Kind:                   entity.KindInbound,
		DestinationWarehouseID: whDst,
		Items:                  []transactions.ItemInput{{ProductID: prodOne, Quantity: 7}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))

	assert.Zero(t, qty(s, prodOne, whDst))
}

func TestCancel_CanceladoDosVecesRechazado(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, _, err := uc.Create(ctx, userID, transferInput(false, 5))
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))
	before := qty(s, prodOne, whSrc)

	err = uc.Cancel(ctx, userID, []string{tx.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, before, qty(s, prodOne, whSrc),
		"la segunda cancelación no debe tocar el libro")
}

func TestCancel_LoteSeDetieneEnElPrimerError(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	first, _, err := uc.Create(ctx, userID, transferInput(false, 3))
	require.NoError(t, err)
	second, _, err := uc.Create(ctx, userID, transferInput(false, 4))
	require.NoError(t, err)

	err = uc.Cancel(ctx, userID, []string{first.ID, "tx-fantasma", second.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	storedFirst, _ := (&fakeTxRepo{s: s}).GetByID(first.ID)
	assert.Equal(t, entity.StatusCancelled, storedFirst.Status,
		"el primero ya quedó cancelado antes de la falla")
	storedSecond, _ := (&fakeTxRepo{s: s}).GetByID(second.ID)
	assert.Equal(t, entity.StatusConfirmed, storedSecond.Status,
		"los posteriores al error no se procesan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación — los transfers no crean ni destruyen existencias
// ──────────────────────────────────────────────────────────────────────────────

func TestConservacion_TransferCompletoSumaCero(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 10))
	require.NoError(t, err)
	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 10},
	})
	require.NoError(t, err)

	total := qty(s, prodOne, whSrc) + qty(s, prodOne, whDst)
	assert.Zero(t, total, "recepción completa: lo que sale de un lado entra al otro")
}

func TestConservacion_CancelarRestauraElEstadoInicial(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	// Semilla: existencia previa en el origen.
	s.quantities[qtyKey(prodOne, whSrc)] = 20

	tx, items, err := uc.Create(ctx, userID, transferInput(true, 10))
	require.NoError(t, err)
	_, _, err = uc.Receive(ctx, userID, tx.ID, []transactions.ReceiveItemInput{
		{ItemID: items[0].ID, ReceivedQuantity: 4},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, userID, []string{tx.ID}))

	assert.Equal(t, int64(20), qty(s, prodOne, whSrc))
	assert.Zero(t, qty(s, prodOne, whDst))
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_NoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	_, _, err := uc.Get(context.Background(), "tx-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStock_ParAusenteSeLeeComoCero(t *testing.T) {
	uc, _ := newUseCase(t)
	rec, err := uc.Stock(context.Background(), prodOne, whSrc)
	require.NoError(t, err)
	assert.Zero(t, rec.Quantity)
	assert.Equal(t, entity.AvailabilitySold, rec.Availability())
}

func TestStockByWarehouse_BodegaInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.StockByWarehouse(context.Background(), "wh-fantasma", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstadoYBodega(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Create(ctx, userID, transferInput(true, 2))
	require.NoError(t, err)
	_, _, err = uc.Create(ctx, userID, transferInput(false, 2))
	require.NoError(t, err)

	awaiting, total, err := uc.List(ctx, repository.TransactionFilter{Status: entity.StatusAwaiting}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, awaiting, 1)
	assert.Equal(t, entity.StatusAwaiting, awaiting[0].Status)

	bySrc, _, err := uc.List(ctx, repository.TransactionFilter{WarehouseID: whSrc}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, bySrc, 2, "ambos transfers tocan la bodega origen")
}
