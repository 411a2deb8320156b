package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
)

// StockHandler expone las existencias del libro de cantidades (protegido).
type StockHandler struct {
	uc *transactions.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *transactions.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Existencias de un producto en una bodega
// @Description  Un par (producto, bodega) sin movimientos se lee como cero con disponibilidad sold.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	rec, err := h.uc.Stock(c.UserContext(), productID, warehouseID)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(transactions.ToStockResponse(rec))
}

// ListByWarehouse godoc
// @Summary      Existencias de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *StockHandler) ListByWarehouse(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	records, err := h.uc.StockByWarehouse(c.UserContext(), id, limit, offset)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(dto.StockListResponse{
		Items: transactions.ToStockResponses(records),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
