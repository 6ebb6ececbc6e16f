package ports

import (
	"context"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// UserRepository is the credential store interface. Implementations must
// enforce uniqueness of the email key themselves (unique index, mutex), so a
// concurrent duplicate Create fails atomically without mutating state.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
