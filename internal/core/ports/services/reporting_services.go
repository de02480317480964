package services

import (
	"context"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating financial reports
type ReportingSvcFacade interface {
	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// StockSummary aggregates stock movements per product.
	StockSummary(ctx context.Context) ([]domain.StockSummaryRow, error)
}
