package handlers

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/withdraw"
	"github.com/cgultunca/moneybox-withdrawal/internal/utils/response"
	"github.com/cgultunca/moneybox-withdrawal/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountReader loads a single account.
type AccountReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// AccountHandler exposes account lookup and withdrawal endpoints.
type AccountHandler struct {
	accounts AccountReader
	withdraw withdraw.Service
	logger   *zap.Logger
}

func NewAccountHandler(accounts AccountReader, withdrawService withdraw.Service, logger *zap.Logger) *AccountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandler{
		accounts: accounts,
		withdraw: withdrawService,
		logger:   logger,
	}
}

type withdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GetAccount handles GET /api/accounts/:id.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	account, err := h.accounts.GetByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "account retrieved", account)
}

// Withdraw handles POST /api/accounts/:id/withdraw.
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return response.DomainError(c, err)
	}

	if err := h.withdraw.Execute(c.UserContext(), id, req.Amount); err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "withdrawal completed", fiber.Map{
		"account_id": id,
		"amount":     req.Amount,
	})
}

func (h *AccountHandler) fail(c *fiber.Ctx, err error) error {
	logFailure(h.logger, c, err)
	return response.DomainError(c, err)
}
