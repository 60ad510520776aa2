package handlers

import (
	"time"

	"bankcards/internal/middleware"
	"bankcards/internal/models"
	"bankcards/internal/services/transfer"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// TransferResponse is the ledger view of a completed transfer.
type TransferResponse struct {
	ID            uuid.UUID                `json:"id"`
	TransactionID uuid.UUID                `json:"transactionId"`
	Amount        decimal.Decimal          `json:"amount"`
	CurrencyCode  string                   `json:"currencyCode"`
	Status        models.TransactionStatus `json:"status"`
	Description   string                   `json:"description"`
	CreatedAt     time.Time                `json:"createdAt"`
	ProcessedAt   *time.Time               `json:"processedAt"`
}

// Create moves money between two cards owned by the caller.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input transfer.CreateTransferInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.FromCardNumber == "" || input.ToCardNumber == "" {
		return utils.BadRequest(c, "Both card numbers are required")
	}

	txn, err := h.transferService.Transfer(input, claims.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(TransferResponse{
		ID:            txn.ID,
		TransactionID: txn.TransactionID,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Status:        txn.Status,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
		ProcessedAt:   txn.ProcessedAt,
	})
}
