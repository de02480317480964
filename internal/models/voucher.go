package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher mirrors the vouchers table.
type Voucher struct {
	VoucherID            string          `db:"voucher_id"`
	VoucherNumber        string          `db:"voucher_number"`
	VoucherType          string          `db:"voucher_type"`
	VoucherDate          time.Time       `db:"voucher_date"`
	PartyID              *string         `db:"party_id"` // Nullable FK -> parties
	Subtotal             decimal.Decimal `db:"subtotal"`
	DiscountRate         decimal.Decimal `db:"discount_rate"`
	DiscountAmount       decimal.Decimal `db:"discount_amount"`
	TotalAmount          decimal.Decimal `db:"total_amount"`
	TaxTotal             decimal.Decimal `db:"tax_total"`
	PaidFromAccountID    *string         `db:"paid_from_account_id"` // Nullable FK -> accounts
	Narration            string          `db:"narration"`
	Status               string          `db:"status"`
	PaymentStatus        *string         `db:"payment_status"`          // Invoice types only
	CreatedFromInvoiceID *string         `db:"created_from_invoice_id"` // Nullable FK -> vouchers
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// VoucherItem mirrors the voucher_items table.
type VoucherItem struct {
	ItemID           string          `db:"item_id"`
	VoucherID        string          `db:"voucher_id"`
	ProductID        *string         `db:"product_id"` // Nullable FK -> products
	AccountID        *string         `db:"account_id"` // Nullable FK -> accounts (payee/ledger lines)
	Description      string          `db:"description"`
	InitialQuantity  decimal.Decimal `db:"initial_quantity"`
	Count            decimal.Decimal `db:"count"`
	DeductionPerUnit decimal.Decimal `db:"deduction_per_unit"`
	FinalQuantity    decimal.Decimal `db:"final_quantity"`
	Rate             decimal.Decimal `db:"rate"`
	Amount           decimal.Decimal `db:"amount"`
	DiscountPercent  decimal.Decimal `db:"discount_percent"`
	DiscountAmount   decimal.Decimal `db:"discount_amount"`
	TaxableAmount    decimal.Decimal `db:"taxable_amount"`
	TaxRate          decimal.Decimal `db:"tax_rate"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	AuditFields
}

// VoucherSequence mirrors the voucher_sequences table; one row per voucher type.
type VoucherSequence struct {
	VoucherType string `db:"voucher_type"`
	Prefix      string `db:"prefix"`
	NextNumber  int64  `db:"next_number"`
}
