package handlers

import (
	"time"

	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/services/user"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse is the user representation returned to administrators.
type UserResponse struct {
	ID         uuid.UUID       `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Role       models.UserRole `json:"role"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	CardsCount int64           `json:"cardsCount"`
}

func toUserResponse(u *models.User, cardsCount int64) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		CardsCount: cardsCount,
	}
}

// List returns a filtered page of users, newest first.
func (h *UserHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)

	filter := repositories.UserFilter{Search: c.Query("search")}
	if v := c.Query("role"); v != "" {
		role := models.UserRole(v)
		if role != models.RoleAdmin && role != models.RoleUser {
			return utils.BadRequest(c, "Invalid parameter 'role'")
		}
		filter.Role = &role
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}
	var err error
	if filter.CreatedAfter, err = parseTimeQuery(c, "createdAfter"); err != nil {
		return utils.BadRequest(c, "Invalid parameter 'createdAfter'")
	}
	if filter.CreatedBefore, err = parseTimeQuery(c, "createdBefore"); err != nil {
		return utils.BadRequest(c, "Invalid parameter 'createdBefore'")
	}

	users, counts, total, err := h.userService.List(filter, p.Page, p.Size)
	if err != nil {
		return utils.HandleError(c, err)
	}

	content := make([]UserResponse, len(users))
	for i := range users {
		content[i] = toUserResponse(&users[i], counts[users[i].ID])
	}
	return c.JSON(utils.NewPagedResponse(content, p, total))
}

// Create creates a user with an explicit role.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input user.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleUser {
		return utils.BadRequest(c, "Role must be ADMIN or USER")
	}

	u, err := h.userService.Create(input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(u, 0))
}

// Get reads a single user.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	u, cardsCount, err := h.userService.GetByID(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(toUserResponse(u, cardsCount))
}

// Update applies a partial update; absent fields keep current values.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	var input user.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	u, err := h.userService.Update(id, input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	counts := int64(0)
	if updated, n, err := h.userService.GetByID(u.ID); err == nil {
		u, counts = updated, n
	}
	return c.JSON(toUserResponse(u, counts))
}

// Delete removes a user together with their cards and transactions.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}
	if err := h.userService.Delete(id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activate enables authentication for the user.
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	return h.toggleActive(c, true)
}

// Deactivate disables authentication for the user.
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	return h.toggleActive(c, false)
}

func (h *UserHandler) toggleActive(c *fiber.Ctx, active bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	var u *models.User
	if active {
		u, err = h.userService.Activate(id)
	} else {
		u, err = h.userService.Deactivate(id)
	}
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(toUserResponse(u, 0))
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
