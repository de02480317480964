package repositories

import (
	"context"

	"github.com/munimji/munim_backend/internal/core/domain"
)

// UserRepositoryFacade defines lookups for login principals. Users are seeded
// by migration, so there are no write operations.
type UserRepositoryFacade interface {
	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
