package handlers

import (
	"time"

	"bankcards/internal/middleware"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/services/card"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CardResponse exposes a card with the masked number only.
type CardResponse struct {
	ID             uuid.UUID         `json:"id"`
	CardNumberMask string            `json:"cardNumberMask"`
	HolderName     string            `json:"holderName"`
	ExpirationDate string            `json:"expirationDate"`
	Status         models.CardStatus `json:"status"`
	Balance        decimal.Decimal   `json:"balance"`
	CurrencyCode   string            `json:"currencyCode"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// CreateCardResponse carries the clear card number. It is returned from
// creation only; every later read exposes the mask.
type CreateCardResponse struct {
	ID             uuid.UUID         `json:"id"`
	CardNumber     string            `json:"cardNumber"`
	HolderName     string            `json:"holderName"`
	ExpirationDate string            `json:"expirationDate"`
	Status         models.CardStatus `json:"status"`
	Balance        decimal.Decimal   `json:"balance"`
	CurrencyCode   string            `json:"currencyCode"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func toCardResponse(c *models.Card) CardResponse {
	return CardResponse{
		ID:             c.ID,
		CardNumberMask: c.NumberMask,
		HolderName:     c.HolderName,
		ExpirationDate: c.ExpirationDate.Format("2006-01-02"),
		Status:         c.Status,
		Balance:        c.Balance,
		CurrencyCode:   c.CurrencyCode,
		CreatedAt:      c.CreatedAt,
	}
}

// ListAll returns a filtered page across all cards. Administrator only.
func (h *CardHandler) ListAll(c *fiber.Ctx) error {
	return h.list(c, nil)
}

// ListMy returns the caller's cards.
func (h *CardHandler) ListMy(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	return h.list(c, &claims.UserID)
}

func (h *CardHandler) list(c *fiber.Ctx, scope *uuid.UUID) error {
	p := utils.ParsePagination(c)

	filter := repositories.CardFilter{UserID: scope, Search: c.Query("search")}
	if v := c.Query("status"); v != "" {
		status := models.CardStatus(v)
		switch status {
		case models.CardStatusActive, models.CardStatusBlocked, models.CardStatusExpired:
			filter.Status = &status
		default:
			return utils.BadRequest(c, "Invalid parameter 'status'")
		}
	}
	if v := c.Query("minBalance"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			return utils.BadRequest(c, "Invalid parameter 'minBalance'")
		}
		filter.MinBalance = &min
	}
	if v := c.Query("maxBalance"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil {
			return utils.BadRequest(c, "Invalid parameter 'maxBalance'")
		}
		filter.MaxBalance = &max
	}
	var err error
	if filter.CreatedAfter, err = parseTimeQuery(c, "createdAfter"); err != nil {
		return utils.BadRequest(c, "Invalid parameter 'createdAfter'")
	}
	if filter.CreatedBefore, err = parseTimeQuery(c, "createdBefore"); err != nil {
		return utils.BadRequest(c, "Invalid parameter 'createdBefore'")
	}

	cards, total, err := h.cardService.List(filter, p.Page, p.Size)
	if err != nil {
		return utils.HandleError(c, err)
	}

	content := make([]CardResponse, len(cards))
	for i := range cards {
		content[i] = toCardResponse(&cards[i])
	}
	return c.JSON(utils.NewPagedResponse(content, p, total))
}

// Get returns a card after the access policy admits the caller.
func (h *CardHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid card id")
	}
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	crd, err := h.cardService.GetByID(id, claims)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(toCardResponse(crd))
}

// Create issues a new card and reveals the card number this once.
func (h *CardHandler) Create(c *fiber.Ctx) error {
	var input card.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.CardUserUUID == uuid.Nil {
		return utils.BadRequest(c, "User uuid is required")
	}

	crd, pan, err := h.cardService.Create(input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CreateCardResponse{
		ID:             crd.ID,
		CardNumber:     pan,
		HolderName:     crd.HolderName,
		ExpirationDate: crd.ExpirationDate.Format("2006-01-02"),
		Status:         crd.Status,
		Balance:        crd.Balance,
		CurrencyCode:   crd.CurrencyCode,
		CreatedAt:      crd.CreatedAt,
	})
}

// Block sets the card status to BLOCKED.
func (h *CardHandler) Block(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Block)
}

// Unblock restores a blocked card to ACTIVE unless it expired.
func (h *CardHandler) Unblock(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Unblock)
}

// Activate sets the card status to ACTIVE.
func (h *CardHandler) Activate(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Activate)
}

func (h *CardHandler) transition(c *fiber.Ctx, op func(uuid.UUID) (*models.Card, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid card id")
	}
	crd, err := op(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(toCardResponse(crd))
}

// Delete removes the card.
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid card id")
	}
	if err := h.cardService.Delete(id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
