package dto

import "github.com/shopspring/decimal"

// StockResponse stock actual de un producto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// DiscrepancyResponse diferencia entre stock materializado y libro de movimientos.
type DiscrepancyResponse struct {
	ProductID    string `json:"product_id"`
	Materialized int64  `json:"materialized"`
	MovementSum  int64  `json:"movement_sum"`
}

// CashPositionResponse posición de caja del día.
type CashPositionResponse struct {
	Day      string                     `json:"day"`
	Position decimal.Decimal            `json:"position"`
	ByMethod map[string]decimal.Decimal `json:"by_method,omitempty"`
}
