package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// ExchangeHandler maneja las peticiones HTTP de cambios de prendas.
type ExchangeHandler struct {
	uc *ledger.CreateExchangeUseCase
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(uc *ledger.CreateExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

// Create POST /api/exchanges
func (h *ExchangeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.CreateExchange(c.Context(), ledger.CreateExchangeInput{
		CustomerID:       in.CustomerID,
		ItemsIn:          exchangeItems(in.ItemsIn),
		ItemsOut:         exchangeItems(in.ItemsOut),
		DifferenceAmount: in.DifferenceAmount,
		PaymentMethod:    in.PaymentMethod,
		Note:             in.Note,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateExchangeResponse{
		ExchangeID:       res.ExchangeID,
		DifferenceAmount: res.DifferenceAmount,
		CreditGranted:    res.CreditGranted,
	})
}

func exchangeItems(items []dto.ExchangeItemRequest) []ledger.ExchangeItemInput {
	out := make([]ledger.ExchangeItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, ledger.ExchangeItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
