package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one journal entry of an account's ledger with the running
// balance at that point. Positive balance means a net debit.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	VoucherType   VoucherType     `json:"voucherType"`
	EntryDate     time.Time       `json:"entryDate"`
	Narration     string          `json:"narration"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"` // Running balance after this entry
}

// LedgerReport is an account statement over a date window.
type LedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Static opening plus carry-forward before the window
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Entries        []LedgerEntry   `json:"entries"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report.
type PAndLReport struct {
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"` // Total revenue minus total expenses
}

// BalanceSheetReport represents a balance sheet report.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// StockSummaryRow aggregates a product's stock movements: opening stock plus
// total IN minus total OUT.
type StockSummaryRow struct {
	ProductID    string          `json:"productID"`
	ProductCode  string          `json:"productCode"`
	ProductName  string          `json:"productName"`
	Unit         string          `json:"unit"`
	OpeningStock decimal.Decimal `json:"openingStock"`
	QuantityIn   decimal.Decimal `json:"quantityIn"`
	QuantityOut  decimal.Decimal `json:"quantityOut"`
	ValueIn      decimal.Decimal `json:"valueIn"`
	ValueOut     decimal.Decimal `json:"valueOut"`
	OnHand       decimal.Decimal `json:"onHand"` // opening + in - out
}
