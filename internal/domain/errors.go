package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente en la cuenta")
	ErrCustomerRequired    = errors.New("se requiere un cliente para esta operación")
	ErrSaleCancelled       = errors.New("la venta ya está anulada")
	ErrConditionalOpen     = errors.New("la venta condicional sigue abierta; usar devolución")
	ErrInvalidState        = errors.New("estado inválido para la operación")
	ErrPaymentExceedsTotal = errors.New("el pago supera el total")
)
