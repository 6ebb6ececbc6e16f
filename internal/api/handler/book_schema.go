package handler

import (
	"time"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// --- Request / Response types ---

type createBookRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year"   validate:"omitempty,gte=0,lte=2100"`
}

type bookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type listBooksResponse struct {
	Data  []bookResponse `json:"data"`
	Total int            `json:"total"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}
