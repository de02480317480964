package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID   string          `db:"entry_id"`
	VoucherID string          `db:"voucher_id"`
	AccountID string          `db:"account_id"`
	EntryDate time.Time       `db:"entry_date"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	IsManual  bool            `db:"is_manual"`
	Narration string          `db:"narration"`
	AuditFields
}
