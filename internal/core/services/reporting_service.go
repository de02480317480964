package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/middleware"
)

// reportingService assembles the financial reports from aggregated journal
// and stock data.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}

// ProfitAndLoss generates a profit and loss report for a specific period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		logger.Error("Failed to fetch profit and loss data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch profit and loss data: %w", err)
	}

	return &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: sumAmounts(revenue).Sub(sumAmounts(expenses)),
	}, nil
}

// BalanceSheet generates a balance sheet report as of a specific date. The
// net profit accumulated to that date is folded into equity so the sheet
// balances.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		logger.Error("Failed to fetch balance sheet data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch balance sheet data: %w", err)
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, time.Time{}, asOf)
	if err != nil {
		logger.Error("Failed to fetch accumulated profit for balance sheet", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accumulated profit: %w", err)
	}
	netProfit := sumAmounts(revenue).Sub(sumAmounts(expenses))
	if !netProfit.IsZero() {
		equity = append(equity, domain.AccountAmount{
			Name:      "Net Profit to Date",
			NetAmount: netProfit,
		})
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumAmounts(assets),
		TotalLiabilities: sumAmounts(liabilities),
		TotalEquity:      sumAmounts(equity),
	}, nil
}

// StockSummary aggregates stock movements per product.
func (s *reportingService) StockSummary(ctx context.Context) ([]domain.StockSummaryRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetStockSummaryData(ctx)
	if err != nil {
		logger.Error("Failed to fetch stock summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch stock summary: %w", err)
	}
	return rows, nil
}
