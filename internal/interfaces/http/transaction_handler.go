package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionHandler maneja las peticiones HTTP de traslados de bodega (protegido).
type TransactionHandler struct {
	uc *transactions.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transactions.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// transactionError mapea errores de dominio a respuestas HTTP.
func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidReference):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrLedgerFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LEDGER_FAILURE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear traslado de bodega
// @Description  Crea un traslado inbound, outbound o transfer y aplica los ajustes de existencias del lado origen (y destino si no requiere recepción).
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Datos del traslado"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	t, items, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(transactions.ToTransactionResponse(t, items))
}

// List godoc
// @Summary      Listar traslados
// @Description  Lista traslados con filtros por tipo, estado y bodega (origen o destino), ordenables por sequence o created_at.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        kind          query  string  false  "inbound | outbound | transfer"
// @Param        status        query  string  false  "draft | confirmed | awaiting | received | cancelled"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        sort_by       query  string  false  "sequence | created_at"  default(sequence)
// @Param        sort_desc     query  bool    false  "Orden descendente"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	f := repository.TransactionFilter{
		Kind:        c.Query("kind"),
		Status:      c.Query("status"),
		WarehouseID: c.Query("warehouse_id"),
		SortBy:      c.Query("sort_by"),
		SortDesc:    c.QueryBool("sort_desc", false),
	}
	list, total, err := h.uc.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{
		Items: transactions.ToTransactionResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// ListItems godoc
// @Summary      Listar líneas de un traslado
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del traslado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.TransactionItemListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/items [get]
func (h *TransactionHandler) ListItems(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	views, total, err := h.uc.ListItems(c.UserContext(), id, limit, offset)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(dto.TransactionItemListResponse{
		Items: transactions.ToItemResponses(views),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Edit godoc
// @Summary      Editar traslado
// @Description  Reemplaza cabecera y líneas. Los efectos previos sobre existencias se revierten por completo antes de aplicar los nuevos.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.EditTransactionRequest  true  "Datos nuevos"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.EditTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EditFromRequest(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar traslados
// @Description  Cancela uno o varios traslados revirtiendo sus efectos sobre existencias. Cada traslado se cancela de forma atómica e independiente.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CancelTransactionsRequest  true  "IDs a cancelar"
// @Success      204   "Sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelTransactionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	if err := h.uc.Cancel(c.UserContext(), GetUserID(c), in.IDs); err != nil {
		return transactionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive godoc
// @Summary      Recibir traslado
// @Description  Completa el paso de recepción de un traslado awaiting: fija cantidades recibidas por línea y acredita el destino solo por lo recibido.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ReceiveTransactionRequest  true  "Cantidades recibidas por línea"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receive [post]
func (h *TransactionHandler) Receive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReceiveTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReceiveFromRequest(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(out)
}
