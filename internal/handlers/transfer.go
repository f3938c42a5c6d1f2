package handlers

import (
	"github.com/cgultunca/moneybox-withdrawal/internal/services/transfer"
	"github.com/cgultunca/moneybox-withdrawal/internal/utils/response"
	"github.com/cgultunca/moneybox-withdrawal/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransferHandler exposes the account-to-account transfer endpoint.
type TransferHandler struct {
	service transfer.Service
	logger  *zap.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service, logger *zap.Logger) *TransferHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferHandler{service: s, logger: logger}
}

type transferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Transfer handles POST /api/transfers requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		return response.BadRequest(c, "invalid from_account_id")
	}
	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return response.BadRequest(c, "invalid to_account_id")
	}
	if err := validation.ValidateTransferRequest(fromID, toID, req.Amount); err != nil {
		return response.DomainError(c, err)
	}

	if err := h.service.Execute(c.UserContext(), fromID, toID, req.Amount); err != nil {
		logFailure(h.logger, c, err)
		return response.DomainError(c, err)
	}
	return response.Success(c, "transfer completed", fiber.Map{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          req.Amount,
	})
}
