package ports

import (
	"context"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// RegisterInput carries the signup payload into the service layer.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role is optional and defaults to domain.RoleUser.
	Role string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the matching user. A missing account
	// and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
