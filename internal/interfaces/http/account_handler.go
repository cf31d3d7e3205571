package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// AccountHandler maneja las peticiones HTTP de cuentas corrientes.
type AccountHandler struct {
	uc *ledger.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *ledger.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Pay POST /api/accounts/payments
func (h *AccountHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	balance, err := h.uc.PayAccount(c.Context(), in.CustomerID, in.Amount, in.PaymentMethod)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{CustomerID: in.CustomerID, Balance: balance})
}

// ReversePayment POST /api/accounts/payments/:movement_id/reverse
func (h *AccountHandler) ReversePayment(c *fiber.Ctx) error {
	balance, err := h.uc.ReversePayment(c.Context(), c.Params("movement_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "pago revertido", "balance": balance})
}

// AddDebt POST /api/accounts/debts
func (h *AccountHandler) AddDebt(c *fiber.Ctx) error {
	var in dto.AddDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	balance, err := h.uc.AddDebt(c.Context(), in.CustomerID, in.Amount, in.Note)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{CustomerID: in.CustomerID, Balance: balance})
}

// Balance GET /api/accounts/:customer_id/balance
func (h *AccountHandler) Balance(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	balance, err := h.uc.Balance(c.Context(), customerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.BalanceResponse{CustomerID: customerID, Balance: balance})
}

// Statement GET /api/accounts/:customer_id/statement?limit=50&offset=0
func (h *AccountHandler) Statement(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	account, movements, err := h.uc.Statement(c.Context(), customerID, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	balance, err := h.uc.Balance(c.Context(), customerID)
	if err != nil {
		return errorResponse(c, err)
	}
	out := dto.StatementResponse{
		CustomerID: customerID,
		Status:     account.Status,
		Balance:    balance,
		Movements:  make([]dto.AccountMovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.AccountMovementResponse{
			ID:            m.ID,
			Type:          m.Type,
			Amount:        m.Amount,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}
	return c.JSON(out)
}
