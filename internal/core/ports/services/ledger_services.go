package services

import (
	"context"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
)

// LedgerSvcFacade defines the ledger and trial balance calculators.
type LedgerSvcFacade interface {
	// GetLedger computes an account's statement over a window: opening
	// balance (static opening plus carry-forward before from), entries
	// ordered by (voucher_date, voucher_id) with running balances, and the
	// closing balance. Positive balances are debits.
	GetLedger(ctx context.Context, accountID string, from *time.Time, to time.Time) (*domain.LedgerReport, error)

	// GetTrialBalance sums debit and credit per active account over the
	// window, omitting accounts with no activity, ordered by account code.
	GetTrialBalance(ctx context.Context, from *time.Time, to time.Time) ([]domain.TrialBalanceRow, error)
}
