package repositories

import (
	"context"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only operations for ledger and report data.
// All queries exclude journal entries whose voucher has been soft-deleted.
type ReportingRepository interface {
	// GetLedgerEntries retrieves an account's journal entries in the window,
	// ordered by (voucher_date, voucher_id) ascending. The running balance is
	// left zero for the caller to accumulate.
	GetLedgerEntries(ctx context.Context, accountID string, from *time.Time, to time.Time) ([]domain.LedgerEntry, error)

	// GetCarryForward returns the sum of debit minus credit across the
	// account's entries dated strictly before the given date.
	GetCarryForward(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)

	// GetTrialBalanceData sums debit and credit per active account over the
	// window; accounts with no activity are omitted. Rows are ordered by
	// account code.
	GetTrialBalanceData(ctx context.Context, from *time.Time, to time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves net income and expense account amounts
	// for the period.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error)

	// GetBalanceSheetData retrieves net asset, liability and equity account
	// amounts as of a date.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error)

	// GetStockSummaryData aggregates stock movements per product.
	GetStockSummaryData(ctx context.Context) ([]domain.StockSummaryRow, error)
}
