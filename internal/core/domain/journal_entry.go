package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one debit-or-credit line against one account, belonging to a
// voucher. Exactly one of Debit/Credit is nonzero. Entries are created
// atomically with their voucher and regenerated wholesale when it is edited;
// they are never patched line by line.
type JournalEntry struct {
	EntryID   string          `json:"entryID"`   // Primary Key (UUID)
	VoucherID string          `json:"voucherID"` // FK -> vouchers.voucher_id
	AccountID string          `json:"accountID"` // FK -> accounts.account_id
	EntryDate time.Time       `json:"entryDate"` // Mirrors the voucher date
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	IsManual  bool            `json:"isManual"` // User-entered journal lines vs system-derived postings
	Narration string          `json:"narration"`
	AuditFields
}

// Net returns debit minus credit, the entry's contribution to a running
// Dr-positive balance.
func (e JournalEntry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}
