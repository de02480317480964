package accounting

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum absolute difference under which two monetary
// values are considered equal throughout the ledger (balance checks,
// allocation status, settlement comparisons).
var Tolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether a and b differ by less than Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// CalculateLine fills the derived fields of a voucher line:
//
//	finalQuantity = initialQuantity - count*deductionPerUnit
//	amount        = finalQuantity * rate
//	discount      = percent > 0 ? amount*percent/100 : fixed discount amount
//	taxable       = amount - discount
//	taxAmount     = taxable * taxRate / 100
//
// A negative finalQuantity (deduction exceeding the initial quantity) is kept
// as computed, not clamped or rejected.
func CalculateLine(item domain.VoucherItem) domain.VoucherItem {
	item.FinalQuantity = item.InitialQuantity.Sub(item.Count.Mul(item.DeductionPerUnit))
	item.Amount = item.FinalQuantity.Mul(item.Rate)
	if item.DiscountPercent.GreaterThan(decimal.Zero) {
		item.DiscountAmount = item.Amount.Mul(item.DiscountPercent).Div(decimal.NewFromInt(100))
	}
	item.TaxableAmount = item.Amount.Sub(item.DiscountAmount)
	item.TaxAmount = item.TaxableAmount.Mul(item.TaxRate).Div(decimal.NewFromInt(100))
	return item
}

// VoucherTotals holds the header amounts derived from a voucher's lines.
type VoucherTotals struct {
	Subtotal       decimal.Decimal // Sum of line nets (amount - line discount)
	DiscountAmount decimal.Decimal // Resolved voucher-level discount
	TotalAmount    decimal.Decimal // Subtotal - voucher-level discount
	TaxTotal       decimal.Decimal // Sum of line tax amounts
}

// GrandTotal is the settlement value: total after discount plus tax.
func (t VoucherTotals) GrandTotal() decimal.Decimal {
	return t.TotalAmount.Add(t.TaxTotal)
}

// CalculateVoucherTotals aggregates calculated lines into header totals. The
// subtotal is net of line discounts; the voucher-level discount (rate takes
// precedence over the fixed amount when > 0) is then subtracted again.
func CalculateVoucherTotals(items []domain.VoucherItem, discountRate, discountAmount decimal.Decimal) VoucherTotals {
	totals := VoucherTotals{
		Subtotal:    decimal.Zero,
		TotalAmount: decimal.Zero,
		TaxTotal:    decimal.Zero,
	}
	for _, item := range items {
		totals.Subtotal = totals.Subtotal.Add(item.Amount.Sub(item.DiscountAmount))
		totals.TaxTotal = totals.TaxTotal.Add(item.TaxAmount)
	}
	if discountRate.GreaterThan(decimal.Zero) {
		totals.DiscountAmount = totals.Subtotal.Mul(discountRate).Div(decimal.NewFromInt(100))
	} else {
		totals.DiscountAmount = discountAmount
	}
	totals.TotalAmount = totals.Subtotal.Sub(totals.DiscountAmount)
	return totals
}

// AllocationStatus derives an invoice's payment status from the allocated
// total and the invoice grand total: paid when the two match within Tolerance,
// partially_paid when anything at all is allocated, unpaid otherwise.
func AllocationStatus(allocated, grandTotal decimal.Decimal) domain.PaymentStatus {
	if WithinTolerance(allocated, grandTotal) {
		return domain.Paid
	}
	if allocated.GreaterThan(decimal.Zero) {
		return domain.PartiallyPaid
	}
	return domain.Unpaid
}

// SumEntries returns the total debit and total credit across journal entries.
func SumEntries(entries []domain.JournalEntry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}

// EntriesBalanced reports whether total debits equal total credits within
// Tolerance. An empty entry set is balanced (zero monetary effect).
func EntriesBalanced(entries []domain.JournalEntry) bool {
	debit, credit := SumEntries(entries)
	return WithinTolerance(debit, credit)
}
