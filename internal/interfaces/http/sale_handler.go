package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	createUC      *ledger.CreateSaleUseCase
	cancelUC      *ledger.CancelSaleUseCase
	conditionalUC *ledger.ConditionalSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *ledger.CreateSaleUseCase, cancelUC *ledger.CancelSaleUseCase, conditionalUC *ledger.ConditionalSaleUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, cancelUC: cancelUC, conditionalUC: conditionalUC}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]ledger.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ledger.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	res, err := h.createUC.CreateSale(c.Context(), ledger.CreateSaleInput{
		CustomerID:    in.CustomerID,
		Channel:       in.Channel,
		SaleType:      in.SaleType,
		Items:         items,
		PaidAmount:    in.PaidAmount,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{
		SaleID:        res.SaleID,
		Total:         res.Total,
		Paid:          res.Paid,
		CreditApplied: res.CreditApplied,
		Pending:       res.Pending,
		IsFiado:       res.IsFiado,
	})
}

// Cancel POST /api/sales/:id/cancel
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	if err := h.cancelUC.CancelSale(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta anulada"})
}

// Confirm POST /api/sales/:id/confirm
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmConditionalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.conditionalUC.Confirm(c.Context(), c.Params("id"), in.Payment, in.PaymentMethod)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ConfirmConditionalResponse{
		SaleID:  res.SaleID,
		Paid:    res.Paid,
		Pending: res.Pending,
		IsFiado: res.IsFiado,
	})
}

// Return POST /api/sales/:id/return
func (h *SaleHandler) Return(c *fiber.Ctx) error {
	if err := h.conditionalUC.Return(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "condicional devuelta, stock restituido"})
}
