package transactions

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BarcodeUseCase resuelve un código escaneado a líneas (producto, cantidad
// sugerida) para prellenar un borrador de traslado. Solo lectura: no posee
// estado del libro ni dispara ajustes.
type BarcodeUseCase struct {
	barcodeRepo repository.BarcodeRepository
}

// NewBarcodeUseCase construye el caso de uso de códigos de barras.
func NewBarcodeUseCase(barcodeRepo repository.BarcodeRepository) *BarcodeUseCase {
	return &BarcodeUseCase{barcodeRepo: barcodeRepo}
}

// ResolveDraft devuelve las líneas asociadas a un código escaneado.
// Código desconocido retorna ErrNotFound.
func (uc *BarcodeUseCase) ResolveDraft(ctx context.Context, code string) (*dto.BarcodeDraftResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.barcodeRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	out := &dto.BarcodeDraftResponse{Code: code}
	for _, ln := range lines {
		out.Items = append(out.Items, dto.BarcodeDraftItem{
			ProductID:   ln.ProductID,
			ProductSKU:  ln.ProductSKU,
			ProductName: ln.ProductName,
			Quantity:    ln.Quantity,
		})
	}
	return out, nil
}
