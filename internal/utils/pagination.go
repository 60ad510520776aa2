package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination carries zero-based page parameters.
type Pagination struct {
	Page int
	Size int
}

// ParsePagination reads page/size query params with the API defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	return Pagination{Page: page, Size: size}
}

// PagedResponse is the listing envelope.
type PagedResponse struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int64       `json:"totalPages"`
	First         bool        `json:"first"`
	Last          bool        `json:"last"`
}

// NewPagedResponse assembles the envelope from a page of content.
func NewPagedResponse(content interface{}, p Pagination, total int64) PagedResponse {
	totalPages := total / int64(p.Size)
	if total%int64(p.Size) > 0 {
		totalPages++
	}
	return PagedResponse{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         p.Page == 0,
		Last:          int64(p.Page) >= totalPages-1,
	}
}
