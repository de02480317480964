package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAllocation mirrors the payment_allocations table.
type PaymentAllocation struct {
	AllocationID     string          `db:"allocation_id"`
	PaymentVoucherID string          `db:"payment_voucher_id"`
	InvoiceVoucherID string          `db:"invoice_voucher_id"`
	AllocatedAmount  decimal.Decimal `db:"allocated_amount"`
	AllocationDate   time.Time       `db:"allocation_date"`
	PartyID          *string         `db:"party_id"` // Denormalized from the invoice
	AuditFields
}
