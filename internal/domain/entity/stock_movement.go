package entity

import "time"

// Tipos de movimiento de stock.
const (
	StockMovementInitial          = "INITIAL"           // carga inicial
	StockMovementAdjustment       = "ADJUSTMENT"        // ajuste manual o reverso por anulación
	StockMovementSalePhysical     = "SALE_PHYSICAL"     // venta en el local
	StockMovementSaleMercadoLibre = "SALE_MERCADOLIBRE" // venta por Mercado Libre
	StockMovementExchangeIn       = "EXCHANGE_IN"       // prenda que entra por cambio
	StockMovementExchangeOut      = "EXCHANGE_OUT"      // prenda que sale por cambio
)

// Canales de venta/movimiento.
const (
	ChannelLocal        = "LOCAL"
	ChannelMercadoLibre = "MERCADOLIBRE"
)

// Tipos de referencia: vinculan cada movimiento con la operación que lo causó.
const (
	RefSale              = "SALE"
	RefSaleCancellation  = "SALE_CANCELLATION"
	RefConditionalReturn = "CONDITIONAL_RETURN"
	RefExchange          = "EXCHANGE"
	RefAdjustment        = "ADJUSTMENT"
)

// StockMovement es un registro inmutable del libro de stock. La cantidad es con
// signo: positiva aumenta stock, negativa lo disminuye. El stock actual de un
// producto es la suma de las cantidades de todos sus movimientos.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // StockMovement*
	Quantity      int64  // con signo
	ReferenceType string // Ref*
	ReferenceID   string
	Channel       string // ChannelLocal | ChannelMercadoLibre
	Notes         string
	CreatedAt     time.Time
}
