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

var ErrPartyHasReferences = fmt.Errorf("party is referenced by vouchers or journal entries: %w", apperrors.ErrConflict)

// partyService provides customer/supplier registry operations. Every party
// owns exactly one ledger account; the repository keeps the pair atomic.
type partyService struct {
	partyRepo   portsrepo.PartyRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.PartySvcFacade {
	return &partyService{
		partyRepo:   partyRepo,
		accountRepo: accountRepo,
	}
}

// Ensure partyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty persists a new party and its paired ledger account atomically.
// Customers pair with an ASSET (Sundry Debtors) account, suppliers with a
// LIABILITY (Sundry Creditors) one; the account reuses the party code.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, nil, fmt.Errorf("%w: party code is required", apperrors.ErrValidation)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, nil, fmt.Errorf("%w: opening balance cannot be negative, use openingBalanceType CR instead", apperrors.ErrValidation)
	}

	balanceType := req.OpeningBalanceType
	if balanceType == "" {
		balanceType = domain.DebitSide
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	party := domain.Party{
		PartyID:     uuid.NewString(),
		Code:        code,
		PartyType:   req.PartyType,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
		AuditFields: audit,
	}

	account := domain.Account{
		AccountID:          uuid.NewString(),
		Code:               code,
		Name:               party.Name,
		AccountType:        party.LedgerAccountType(),
		AccountGroup:       party.LedgerAccountGroup(),
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: balanceType,
		PartyID:            &party.PartyID,
		IsSystem:           false,
		IsActive:           true,
		AuditFields:        audit,
	}

	if err := s.partyRepo.SaveParty(ctx, party, account); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()), slog.String("code", code))
		return nil, nil, err
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("code", party.Code), slog.String("account_id", account.AccountID))
	return &party, &account, nil
}

// GetPartyByID retrieves a party together with its paired ledger account.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find party by ID", slog.String("error", err.Error()), slog.String("party_id", partyID))
		}
		return nil, nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}

	account, err := s.accountRepo.FindAccountByPartyID(ctx, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find paired account for party", slog.String("error", err.Error()), slog.String("party_id", partyID))
			return nil, nil, fmt.Errorf("failed to find account for party %s: %w", partyID, err)
		}
		// A party without a ledger account cannot post vouchers; surface the
		// party anyway so the registry stays inspectable.
		logger.Warn("Party has no paired ledger account", slog.String("party_id", partyID))
		account = nil
	}

	return party, account, nil
}

// ListParties retrieves parties ordered by name, optionally filtered by type.
func (s *partyService) ListParties(ctx context.Context, partyType *domain.PartyType, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parties, err := s.partyRepo.ListParties(ctx, partyType, includeInactive, limit, offset)
	if err != nil {
		logger.Error("Failed to list parties", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// UpdateParty updates a party; a name change propagates to the paired account
// inside the same transaction. Code and party type are immutable.
func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: party name cannot be empty", apperrors.ErrValidation)
		}
		party.Name = name
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}

	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, err
	}

	logger.Info("Party updated", slog.String("party_id", partyID))
	return party, nil
}

// DeleteParty soft-deletes a party and deactivates its paired account.
// Rejected while any non-deleted voucher or journal entry references it.
func (s *partyService) DeleteParty(ctx context.Context, partyID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return fmt.Errorf("failed to find party %s: %w", partyID, err)
	}

	referenced, err := s.partyRepo.HasVoucherReferences(ctx, partyID)
	if err != nil {
		logger.Error("Failed to check voucher references for party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return fmt.Errorf("failed to check references for party %s: %w", partyID, err)
	}
	if referenced {
		return fmt.Errorf("%w: party %s", ErrPartyHasReferences, party.Code)
	}

	if err := s.partyRepo.SoftDeleteParty(ctx, partyID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return err
	}

	logger.Info("Party deleted", slog.String("party_id", partyID), slog.String("code", party.Code))
	return nil
}
