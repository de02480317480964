package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/munimji/munim_backend/internal/apperrors"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
	"github.com/munimji/munim_backend/internal/platform/config"
	"github.com/munimji/munim_backend/internal/utils"
)

// ErrInvalidCredentials is returned for any login failure. Wrong username and
// wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)

// authService verifies seeded user credentials and mints JWTs.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the username/password pair and returns a signed token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown username", slog.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user for login", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user %s: %w", req.Username, err)
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user", slog.String("userID", user.UserID))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("userID", user.UserID))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("userID", user.UserID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to generate token", apperrors.ErrInternal)
	}

	logger.Info("User logged in", slog.String("userID", user.UserID))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
	}, nil
}
