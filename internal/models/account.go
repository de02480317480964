package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID          string          `db:"account_id"`
	Code               string          `db:"code"`
	Name               string          `db:"name"`
	AccountType        string          `db:"account_type"`
	AccountGroup       string          `db:"account_group"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceType string          `db:"opening_balance_type"` // DR or CR
	PartyID            *string         `db:"party_id"`             // Nullable FK -> parties
	IsSystem           bool            `db:"is_system"`
	IsActive           bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
