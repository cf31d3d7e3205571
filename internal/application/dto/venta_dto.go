package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta del request.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest request para registrar una venta.
type CreateSaleRequest struct {
	CustomerID    *string           `json:"customer_id"`
	Channel       string            `json:"channel"`   // PHYSICAL | MERCADOLIBRE
	SaleType      string            `json:"sale_type"` // NORMAL | CONDITIONAL (vacío = NORMAL)
	Items         []SaleItemRequest `json:"items"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
}

// CreateSaleResponse respuesta de la venta registrada.
type CreateSaleResponse struct {
	SaleID        string          `json:"sale_id"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	CreditApplied decimal.Decimal `json:"credit_applied"`
	Pending       decimal.Decimal `json:"pending"`
	IsFiado       bool            `json:"is_fiado"`
}

// ConfirmConditionalRequest pago adicional al confirmar una condicional.
type ConfirmConditionalRequest struct {
	Payment       decimal.Decimal `json:"payment"`
	PaymentMethod string          `json:"payment_method"`
}

// ConfirmConditionalResponse respuesta de la confirmación.
type ConfirmConditionalResponse struct {
	SaleID  string          `json:"sale_id"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	IsFiado bool            `json:"is_fiado"`
}
