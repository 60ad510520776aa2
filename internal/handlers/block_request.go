package handlers

import (
	"time"

	"bankcards/internal/middleware"
	"bankcards/internal/models"
	"bankcards/internal/services/blockrequest"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BlockRequestHandler struct {
	blockRequestService blockrequest.Service
}

func NewBlockRequestHandler(blockRequestService blockrequest.Service) *BlockRequestHandler {
	return &BlockRequestHandler{blockRequestService: blockRequestService}
}

type BlockRequestResponse struct {
	ID        uuid.UUID                 `json:"id"`
	CardID    uuid.UUID                 `json:"cardId"`
	Status    models.BlockRequestStatus `json:"status"`
	Reason    string                    `json:"reason"`
	CreatedAt time.Time                 `json:"createdAt"`
}

func toBlockRequestResponse(r *models.BlockRequest) BlockRequestResponse {
	return BlockRequestResponse{
		ID:        r.ID,
		CardID:    r.CardID,
		Status:    r.Status,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

// Submit files a block request for a card owned by the caller.
func (h *BlockRequestHandler) Submit(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input blockrequest.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.CardNumber == "" {
		return utils.BadRequest(c, "Card number is required")
	}

	request, err := h.blockRequestService.Submit(input, claims.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBlockRequestResponse(request))
}
