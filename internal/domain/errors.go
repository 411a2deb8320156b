package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El núcleo de traslados distingue cuatro fallas tipadas: transición ilegal,
// referencia inexistente, falla del libro de existencias y recurso no encontrado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrInvalidReference   = errors.New("referencia a producto o bodega inválida")
	ErrLedgerFailure      = errors.New("falla al ajustar el libro de existencias")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
