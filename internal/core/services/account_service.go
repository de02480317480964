package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
)

var (
	ErrSystemAccount     = fmt.Errorf("system accounts cannot be modified or deleted: %w", apperrors.ErrForbidden)
	ErrAccountHasEntries = fmt.Errorf("account has journal entries: %w", apperrors.ErrConflict)
	ErrAccountPaired     = fmt.Errorf("account is paired with a party: %w", apperrors.ErrConflict)
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new user-defined account. System accounts are
// seeded by migration and never go through here.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative, use openingBalanceType CR instead", apperrors.ErrValidation)
	}

	balanceType := req.OpeningBalanceType
	if balanceType == "" {
		balanceType = domain.DebitSide
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		Code:               code,
		Name:               strings.TrimSpace(req.Name),
		AccountType:        req.AccountType,
		AccountGroup:       req.AccountGroup,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: balanceType,
		IsSystem:           false,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its unique code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by code", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's details. The code, type and
// party pairing are immutable; system accounts reject any change.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystem {
		return nil, fmt.Errorf("%w: account %s", ErrSystemAccount, account.Code)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.AccountGroup != nil {
		account.AccountGroup = *req.AccountGroup
	}
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance cannot be negative, use openingBalanceType CR instead", apperrors.ErrValidation)
		}
		account.OpeningBalance = *req.OpeningBalance
	}
	if req.OpeningBalanceType != nil {
		account.OpeningBalanceType = domain.BalanceSide(*req.OpeningBalanceType)
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount soft-deletes an account. System accounts, accounts with
// journal entries, and party-paired accounts are rejected; the latter are
// retired through the party itself.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystem {
		return fmt.Errorf("%w: account %s", ErrSystemAccount, account.Code)
	}
	if account.PartyID != nil {
		return fmt.Errorf("%w: delete party %s instead", ErrAccountPaired, *account.PartyID)
	}

	hasEntries, err := s.accountRepo.HasJournalEntries(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check journal entries for account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to check journal entries for account %s: %w", accountID, err)
	}
	if hasEntries {
		return fmt.Errorf("%w: account %s", ErrAccountHasEntries, account.Code)
	}

	if err := s.accountRepo.SoftDeleteAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}
