package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates which side of the ledger an opening balance sits on.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DR"
	CreditSide BalanceSide = "CR"
)

// System account codes seeded at install time. These accounts are structurally
// immutable and can never be deleted; posting templates resolve them by code.
const (
	CodeCash              = "CASH"
	CodeBank              = "BANK"
	CodeSales             = "SALES"
	CodeSalesReturns      = "SALES_RETURNS"
	CodePurchases         = "PURCHASES"
	CodePurchaseReturns   = "PURCHASE_RETURNS"
	CodeTaxPayable        = "TAX_PAYABLE"
	CodeTaxReceivable     = "TAX_RECEIVABLE"
	CodeDiscountAllowed   = "DISCOUNT_ALLOWED"
	CodeDiscountReceived  = "DISCOUNT_RECEIVED"
	CodeInventory         = "INVENTORY"
	CodeOpeningBalanceAdj = "OPENING_BALANCE_ADJUSTMENT"
)

// Account represents one ledger account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID          string          `json:"accountID"`          // Primary Key (UUID)
	Code               string          `json:"code"`               // Unique human-meaningful code
	Name               string          `json:"name"`               // User-defined name
	AccountType        AccountType     `json:"accountType"`        // ASSET, LIABILITY, etc.
	AccountGroup       string          `json:"accountGroup"`       // e.g. "Sundry Debtors", "Direct Income"
	OpeningBalance     decimal.Decimal `json:"openingBalance"`     // Static opening balance
	OpeningBalanceType BalanceSide     `json:"openingBalanceType"` // DR or CR
	PartyID            *string         `json:"partyID,omitempty"`  // Nullable FK -> parties.party_id (1:1 linkage)
	IsSystem           bool            `json:"isSystem"`           // Seeded accounts; never edited or deleted
	IsActive           bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SignedOpeningBalance returns the opening balance with the ledger sign
// convention applied: positive for DR, negative for CR.
func (a Account) SignedOpeningBalance() decimal.Decimal {
	if a.OpeningBalanceType == CreditSide {
		return a.OpeningBalance.Neg()
	}
	return a.OpeningBalance
}
