package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/middleware"
)

// ledgerService computes account statements and the trial balance from
// journal entries. Balances are debit-positive throughout.
type ledgerService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetLedger computes an account's statement over a window. The opening
// balance is the account's static opening plus the carry-forward of all
// entries dated strictly before the window start.
func (s *ledgerService) GetLedger(ctx context.Context, accountID string, from *time.Time, to time.Time) (*domain.LedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening := account.SignedOpeningBalance()
	if from != nil {
		carry, err := s.reportingRepo.GetCarryForward(ctx, accountID, *from)
		if err != nil {
			logger.Error("Failed to compute carry-forward", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to compute carry-forward for account %s: %w", accountID, err)
		}
		opening = opening.Add(carry)
	}

	entries, err := s.reportingRepo.GetLedgerEntries(ctx, accountID, from, to)
	if err != nil {
		logger.Error("Failed to fetch ledger entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch ledger entries for account %s: %w", accountID, err)
	}

	balance := opening
	for i := range entries {
		balance = balance.Add(entries[i].Debit.Sub(entries[i].Credit))
		entries[i].Balance = balance
	}

	logger.Debug("Ledger computed", slog.String("account_id", accountID), slog.Int("entry_count", len(entries)))
	return &domain.LedgerReport{
		AccountID:      account.AccountID,
		AccountName:    account.Name,
		OpeningBalance: opening,
		ClosingBalance: balance,
		Entries:        entries,
	}, nil
}

// GetTrialBalance sums debit and credit per active account over the window,
// omitting accounts with no activity, ordered by account code.
func (s *ledgerService) GetTrialBalance(ctx context.Context, from *time.Time, to time.Time) ([]domain.TrialBalanceRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, from, to)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}
