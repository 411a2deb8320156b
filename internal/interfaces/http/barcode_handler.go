package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
)

// BarcodeHandler resuelve códigos escaneados a borradores de traslado (protegido).
type BarcodeHandler struct {
	uc *transactions.BarcodeUseCase
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(uc *transactions.BarcodeUseCase) *BarcodeHandler {
	return &BarcodeHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver código de barras
// @Description  Devuelve las líneas de producto asociadas a un código para prellenar un borrador de traslado. No muta existencias.
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código escaneado"
// @Success      200   {object}  dto.BarcodeDraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcodes/{code} [get]
func (h *BarcodeHandler) Resolve(c *fiber.Ctx) error {
	code := c.Params("code")
	out, err := h.uc.ResolveDraft(c.UserContext(), code)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(out)
}
