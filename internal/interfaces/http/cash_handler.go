package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// CashHandler maneja las consultas de caja.
type CashHandler struct {
	ledger *ledger.CashLedger
}

// NewCashHandler construye el handler.
func NewCashHandler(l *ledger.CashLedger) *CashHandler {
	return &CashHandler{ledger: l}
}

// Position GET /api/cash/position?day=2026-08-31
// Sin day devuelve la posición de hoy. Incluye el desglose por medio de pago.
func (h *CashHandler) Position(c *fiber.Ctx) error {
	day, err := parseDay(c.Query("day"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser YYYY-MM-DD"})
	}
	position, err := h.ledger.Position(c.Context(), day)
	if err != nil {
		return errorResponse(c, err)
	}
	byMethod, err := h.ledger.PositionByMethod(c.Context(), day)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.CashPositionResponse{
		Day:      day.Format("2006-01-02"),
		Position: position,
		ByMethod: byMethod,
	})
}

// Movements GET /api/cash/movements?day=2026-08-31
func (h *CashHandler) Movements(c *fiber.Ctx) error {
	day, err := parseDay(c.Query("day"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser YYYY-MM-DD"})
	}
	movements, err := h.ledger.Movements(c.Context(), day)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
