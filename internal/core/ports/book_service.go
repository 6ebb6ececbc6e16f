package ports

import (
	"context"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// CreateBookInput carries the create payload into the service layer.
// CreatedBy is the authenticated user ID taken from the request identity,
// never from the client payload.
type CreateBookInput struct {
	Title     string
	Author    string
	Year      int
	CreatedBy string
}

type BookService interface {
	Create(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Delete(ctx context.Context, id string) error
}
