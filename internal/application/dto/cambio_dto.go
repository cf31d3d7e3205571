package dto

import "github.com/shopspring/decimal"

// ExchangeItemRequest prenda que entra o sale en el cambio.
type ExchangeItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateExchangeRequest request para registrar un cambio de prendas.
// DifferenceAmount = valor de lo que sale − valor de lo que entra.
type CreateExchangeRequest struct {
	CustomerID       *string               `json:"customer_id"`
	ItemsIn          []ExchangeItemRequest `json:"items_in"`
	ItemsOut         []ExchangeItemRequest `json:"items_out"`
	DifferenceAmount decimal.Decimal       `json:"difference_amount"`
	PaymentMethod    string                `json:"payment_method"`
	Note             string                `json:"note"`
}

// CreateExchangeResponse respuesta del cambio registrado.
type CreateExchangeResponse struct {
	ExchangeID       string          `json:"exchange_id"`
	DifferenceAmount decimal.Decimal `json:"difference_amount"`
	CreditGranted    decimal.Decimal `json:"credit_granted"`
}
