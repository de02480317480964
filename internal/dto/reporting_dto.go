package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportDateRangeParams defines the optional date window shared by the
// reporting endpoints. Dates use the 2006-01-02 layout.
type ReportDateRangeParams struct {
	FromDate *string `form:"fromDate"`
	ToDate   *string `form:"toDate"`
}

// LedgerResponse defines the data returned for an account ledger.
type LedgerResponse struct {
	AccountID      string               `json:"accountID"`
	AccountName    string               `json:"accountName"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	TotalDebits    decimal.Decimal      `json:"totalDebits"`
	TotalCredits   decimal.Decimal      `json:"totalCredits"`
	Entries        []domain.LedgerEntry `json:"entries"`
}

// ToLedgerResponse converts a domain.LedgerReport to a LedgerResponse DTO,
// adding the debit and credit column totals.
func ToLedgerResponse(report *domain.LedgerReport) LedgerResponse {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range report.Entries {
		totalDebits = totalDebits.Add(e.Debit)
		totalCredits = totalCredits.Add(e.Credit)
	}
	return LedgerResponse{
		AccountID:      report.AccountID,
		AccountName:    report.AccountName,
		OpeningBalance: report.OpeningBalance,
		ClosingBalance: report.ClosingBalance,
		TotalDebits:    totalDebits,
		TotalCredits:   totalCredits,
		Entries:        report.Entries,
	}
}

// TrialBalanceResponse defines the data returned for a trial balance.
type TrialBalanceResponse struct {
	AsOf         time.Time                `json:"asOf"`
	Rows         []domain.TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal          `json:"totalDebits"`
	TotalCredits decimal.Decimal          `json:"totalCredits"`
}

// ToTrialBalanceResponse converts trial balance rows to a TrialBalanceResponse
// DTO, adding the column totals.
func ToTrialBalanceResponse(asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, row := range rows {
		totalDebits = totalDebits.Add(row.Debit)
		totalCredits = totalCredits.Add(row.Credit)
	}
	return TrialBalanceResponse{
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
	}
}

// PAndLResponse defines the data returned for a profit and loss report.
type PAndLResponse struct {
	Revenue       []domain.AccountAmount `json:"revenue"`
	Expenses      []domain.AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal        `json:"totalRevenue"`
	TotalExpenses decimal.Decimal        `json:"totalExpenses"`
	NetProfit     decimal.Decimal        `json:"netProfit"`
}

// ToPAndLResponse converts a domain.PAndLReport to a PAndLResponse DTO.
func ToPAndLResponse(report *domain.PAndLReport) PAndLResponse {
	totalRevenue := decimal.Zero
	for _, r := range report.Revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range report.Expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}
	return PAndLResponse{
		Revenue:       report.Revenue,
		Expenses:      report.Expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     report.NetProfit,
	}
}

// BalanceSheetResponse defines the data returned for a balance sheet.
type BalanceSheetResponse struct {
	AsOf             time.Time              `json:"asOf"`
	Assets           []domain.AccountAmount `json:"assets"`
	Liabilities      []domain.AccountAmount `json:"liabilities"`
	Equity           []domain.AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal        `json:"totalAssets"`
	TotalLiabilities decimal.Decimal        `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal        `json:"totalEquity"`
}

// ToBalanceSheetResponse converts a domain.BalanceSheetReport to a
// BalanceSheetResponse DTO.
func ToBalanceSheetResponse(asOf time.Time, report *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             asOf,
		Assets:           report.Assets,
		Liabilities:      report.Liabilities,
		Equity:           report.Equity,
		TotalAssets:      report.TotalAssets,
		TotalLiabilities: report.TotalLiabilities,
		TotalEquity:      report.TotalEquity,
	}
}

// StockSummaryResponse defines the data returned for a stock summary.
type StockSummaryResponse struct {
	Rows []domain.StockSummaryRow `json:"rows"`
}
