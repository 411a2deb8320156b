package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// BarcodeRepository define el puerto de solo lectura que resuelve un código
// escaneado a sus líneas (producto, cantidad sugerida).
type BarcodeRepository interface {
	FindByCode(code string) ([]*entity.BarcodeLine, error)
}
