package transactions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

type fakeBarcodeRepo struct {
	lines map[string][]*entity.BarcodeLine
}

func (r *fakeBarcodeRepo) FindByCode(code string) ([]*entity.BarcodeLine, error) {
	return r.lines[code], nil
}

func TestResolveDraft_CodigoConVariasLineas(t *testing.T) {
	repo := &fakeBarcodeRepo{lines: map[string][]*entity.BarcodeLine{
		"PKG-001": {
			{Code: "PKG-001", ProductID: prodOne, ProductSKU: "SKU-1", ProductName: "Tornillo", Quantity: 12},
			{Code: "PKG-001", ProductID: prodTwo, ProductSKU: "SKU-2", ProductName: "Tuerca", Quantity: 12},
		},
	}}
	uc := transactions.NewBarcodeUseCase(repo)

	out, err := uc.ResolveDraft(context.Background(), "PKG-001")
	require.NoError(t, err)

	assert.Equal(t, "PKG-001", out.Code)
	require.Len(t, out.Items, 2, "un código de paquete expande todas sus líneas")
	assert.Equal(t, prodOne, out.Items[0].ProductID)
	assert.Equal(t, int64(12), out.Items[0].Quantity)
}

func TestResolveDraft_CodigoDesconocido(t *testing.T) {
	uc := transactions.NewBarcodeUseCase(&fakeBarcodeRepo{lines: map[string][]*entity.BarcodeLine{}})

	_, err := uc.ResolveDraft(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveDraft_CodigoVacio(t *testing.T) {
	uc := transactions.NewBarcodeUseCase(&fakeBarcodeRepo{})

	_, err := uc.ResolveDraft(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
