package port

import (
	"context"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

type UserRepository interface {
	AddUser(ctx context.Context, user domain.User) error

	// GetUser retrieves an account row by username, nil when absent.
	GetUser(ctx context.Context, username string) (*domain.User, error)
}
