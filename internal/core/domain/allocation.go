package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAllocation links one payment/receipt voucher to one invoice voucher,
// recording how much of the settlement applies to that invoice. The invoice's
// payment_status is recomputed whenever allocations change.
type PaymentAllocation struct {
	AllocationID     string          `json:"allocationID"`     // Primary Key (UUID)
	PaymentVoucherID string          `json:"paymentVoucherID"` // FK -> vouchers (payment/receipt)
	InvoiceVoucherID string          `json:"invoiceVoucherID"` // FK -> vouchers (sales/purchase invoice)
	AllocatedAmount  decimal.Decimal `json:"allocatedAmount"`
	AllocationDate   time.Time       `json:"allocationDate"`
	PartyID          *string         `json:"partyID,omitempty"` // Denormalized from the invoice
	AuditFields
}
