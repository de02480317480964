package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the business transaction a voucher records. The type
// fixes the journal-entry template and the stock movement direction.
type VoucherType string

const (
	SalesInvoice    VoucherType = "sales_invoice"
	PurchaseInvoice VoucherType = "purchase_invoice"
	SalesReturn     VoucherType = "sales_return"
	PurchaseReturn  VoucherType = "purchase_return"
	Payment         VoucherType = "payment"
	Receipt         VoucherType = "receipt"
	JournalVoucher  VoucherType = "journal"
	OpeningBalance  VoucherType = "opening_balance"
	OpeningStock    VoucherType = "opening_stock"
)

// IsInvoice reports whether the type participates in payment allocation and
// carries a payment_status.
func (t VoucherType) IsInvoice() bool {
	return t == SalesInvoice || t == PurchaseInvoice
}

// IsSettlement reports whether the type settles invoices (payment/receipt).
func (t VoucherType) IsSettlement() bool {
	return t == Payment || t == Receipt
}

// Valid reports whether the type is one of the known voucher types.
func (t VoucherType) Valid() bool {
	switch t {
	case SalesInvoice, PurchaseInvoice, SalesReturn, PurchaseReturn,
		Payment, Receipt, JournalVoucher, OpeningBalance, OpeningStock:
		return true
	}
	return false
}

// VoucherStatus indicates the lifecycle state of a voucher.
type VoucherStatus string

const (
	Draft  VoucherStatus = "draft"
	Posted VoucherStatus = "posted" // Every voucher is posted on create
)

// PaymentStatus tracks how much of an invoice has been settled by allocations.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "unpaid"
	PartiallyPaid PaymentStatus = "partially_paid"
	Paid          PaymentStatus = "paid"
)

// Voucher represents a single posted business transaction: an invoice, a
// payment, a manual journal, an opening entry. The header totals are derived
// from the items at posting time and never edited in place.
type Voucher struct {
	VoucherID            string          `json:"voucherID"`     // Primary Key (UUID)
	VoucherNumber        string          `json:"voucherNumber"` // Unique, e.g. "SI-0042"
	VoucherType          VoucherType     `json:"voucherType"`
	VoucherDate          time.Time       `json:"voucherDate"`
	PartyID              *string         `json:"partyID,omitempty"`           // Nullable FK -> parties.party_id
	Subtotal             decimal.Decimal `json:"subtotal"`                    // Sum of line nets (amount - line discount)
	DiscountRate         decimal.Decimal `json:"discountRate"`                // Voucher-level percent discount
	DiscountAmount       decimal.Decimal `json:"discountAmount"`              // Resolved voucher-level discount value
	TotalAmount          decimal.Decimal `json:"totalAmount"`                 // Subtotal - voucher discount (pre-tax)
	TaxTotal             decimal.Decimal `json:"taxTotal"`                    // Sum of line tax amounts
	PaidFromAccountID    *string         `json:"paidFromAccountID,omitempty"` // Cash/bank side for payment/receipt
	Narration            string          `json:"narration"`
	Status               VoucherStatus   `json:"status"`
	PaymentStatus        PaymentStatus   `json:"paymentStatus,omitempty"`        // Invoice types only
	CreatedFromInvoiceID *string         `json:"createdFromInvoiceID,omitempty"` // Set on quick-payment vouchers
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	Items []VoucherItem `json:"items,omitempty"`
}

// GrandTotal is the settlement value of the voucher: total after voucher
// discount plus tax.
func (v Voucher) GrandTotal() decimal.Decimal {
	return v.TotalAmount.Add(v.TaxTotal)
}

// VoucherItem is one line of a voucher. Product lines use the quantity/rate
// fields; payee lines (payment/receipt) use AccountID+Amount; pure-ledger
// lines (journal, opening_balance) use AccountID+Debit/Credit.
type VoucherItem struct {
	ItemID           string          `json:"itemID"`    // Primary Key (UUID)
	VoucherID        string          `json:"voucherID"` // FK -> vouchers.voucher_id
	ProductID        *string         `json:"productID,omitempty"`
	AccountID        *string         `json:"accountID,omitempty"`
	Description      string          `json:"description"`
	InitialQuantity  decimal.Decimal `json:"initialQuantity"`
	Count            decimal.Decimal `json:"count"`            // Deduction multiplier, e.g. number of bags
	DeductionPerUnit decimal.Decimal `json:"deductionPerUnit"` // Shrink/wastage per count unit
	FinalQuantity    decimal.Decimal `json:"finalQuantity"`    // initial - count*deduction (may go negative)
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`          // finalQuantity * rate
	DiscountPercent  decimal.Decimal `json:"discountPercent"` // Takes precedence over DiscountAmount when > 0
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TaxableAmount    decimal.Decimal `json:"taxableAmount"` // amount - discount
	TaxRate          decimal.Decimal `json:"taxRate"`       // Percent
	TaxAmount        decimal.Decimal `json:"taxAmount"`     // taxable * taxRate / 100
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	AuditFields
}
