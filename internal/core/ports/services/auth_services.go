package services

import (
	"context"

	"github.com/munimji/munim_backend/internal/dto"
)

// AuthSvcFacade defines the thin authentication surface: verify seeded
// credentials and mint a signed token carrying the user id for audit
// attribution.
type AuthSvcFacade interface {
	// Login verifies the username/password pair and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
