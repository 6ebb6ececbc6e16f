package ports

import (
	"context"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// BookRepository persists the role-gated books resource.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Delete(ctx context.Context, id string) error
}
