package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// StockHandler maneja las consultas de stock y la reconciliación.
type StockHandler struct {
	ledger *ledger.StockLedger
}

// NewStockHandler construye el handler.
func NewStockHandler(l *ledger.StockLedger) *StockHandler {
	return &StockHandler{ledger: l}
}

// Get GET /api/stock/:product_id
func (h *StockHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	qty, err := h.ledger.CurrentStock(c.Context(), productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Quantity: qty})
}

// Reconcile GET /api/stock/reconcile?product_ids=a,b,c
// Compara el stock materializado contra la suma de movimientos.
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("product_ids"))
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_ids es requerido"})
	}
	ids := strings.Split(raw, ",")
	discrepancies, err := h.ledger.Reconcile(c.Context(), ids)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.DiscrepancyResponse, 0, len(discrepancies))
	for _, d := range discrepancies {
		out = append(out, dto.DiscrepancyResponse{
			ProductID:    d.ProductID,
			Materialized: d.Materialized,
			MovementSum:  d.MovementSum,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "discrepancies": out})
}
