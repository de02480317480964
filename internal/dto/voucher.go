package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherItemRequest defines one line of a voucher request. Product lines use
// the quantity fields; payee lines (payment/receipt) use accountID+amount;
// pure-ledger lines (journal, opening_balance) use accountID+debit/credit.
type VoucherItemRequest struct {
	ProductID        *string         `json:"productID"`
	AccountID        *string         `json:"accountID"`
	Description      string          `json:"description"`
	InitialQuantity  decimal.Decimal `json:"initialQuantity"`
	Count            decimal.Decimal `json:"count"`
	DeductionPerUnit decimal.Decimal `json:"deductionPerUnit"`
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
}

// CreateVoucherRequest defines the data needed to post a new voucher.
type CreateVoucherRequest struct {
	VoucherType       domain.VoucherType   `json:"voucherType" binding:"required,oneof=sales_invoice purchase_invoice sales_return purchase_return payment receipt journal opening_balance opening_stock"`
	VoucherDate       time.Time            `json:"voucherDate" binding:"required"`
	PartyID           *string              `json:"partyID"`
	PaidFromAccountID *string              `json:"paidFromAccountID"` // Cash/bank side for payment/receipt
	DiscountRate      decimal.Decimal      `json:"discountRate"`
	DiscountAmount    decimal.Decimal      `json:"discountAmount"`
	Narration         string               `json:"narration"`
	Items             []VoucherItemRequest `json:"items" binding:"required,min=1"`
}

// UpdateVoucherRequest defines the data for regenerating a voucher. The
// voucher type and number are immutable.
type UpdateVoucherRequest struct {
	VoucherDate       time.Time            `json:"voucherDate" binding:"required"`
	PartyID           *string              `json:"partyID"`
	PaidFromAccountID *string              `json:"paidFromAccountID"`
	DiscountRate      decimal.Decimal      `json:"discountRate"`
	DiscountAmount    decimal.Decimal      `json:"discountAmount"`
	Narration         string               `json:"narration"`
	Items             []VoucherItemRequest `json:"items" binding:"required,min=1"`
}

// VoucherItemResponse defines the data returned for a voucher line.
type VoucherItemResponse struct {
	ItemID           string          `json:"itemID"`
	ProductID        *string         `json:"productID,omitempty"`
	AccountID        *string         `json:"accountID,omitempty"`
	Description      string          `json:"description"`
	InitialQuantity  decimal.Decimal `json:"initialQuantity"`
	Count            decimal.Decimal `json:"count"`
	DeductionPerUnit decimal.Decimal `json:"deductionPerUnit"`
	FinalQuantity    decimal.Decimal `json:"finalQuantity"`
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TaxableAmount    decimal.Decimal `json:"taxableAmount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	EntryDate time.Time       `json:"entryDate"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	IsManual  bool            `json:"isManual"`
	Narration string          `json:"narration"`
}

// StockMovementResponse defines the data returned for a stock movement.
type StockMovementResponse struct {
	MovementID   string          `json:"movementID"`
	ProductID    string          `json:"productID"`
	Direction    string          `json:"direction"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
	MovementDate time.Time       `json:"movementDate"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID            string                  `json:"voucherID"`
	VoucherNumber        string                  `json:"voucherNumber"`
	VoucherType          domain.VoucherType      `json:"voucherType"`
	VoucherDate          time.Time               `json:"voucherDate"`
	PartyID              *string                 `json:"partyID,omitempty"`
	Subtotal             decimal.Decimal         `json:"subtotal"`
	DiscountRate         decimal.Decimal         `json:"discountRate"`
	DiscountAmount       decimal.Decimal         `json:"discountAmount"`
	TotalAmount          decimal.Decimal         `json:"totalAmount"`
	TaxTotal             decimal.Decimal         `json:"taxTotal"`
	GrandTotal           decimal.Decimal         `json:"grandTotal"`
	PaidFromAccountID    *string                 `json:"paidFromAccountID,omitempty"`
	Narration            string                  `json:"narration"`
	Status               domain.VoucherStatus    `json:"status"`
	PaymentStatus        domain.PaymentStatus    `json:"paymentStatus,omitempty"`
	CreatedFromInvoiceID *string                 `json:"createdFromInvoiceID,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
	CreatedBy            string                  `json:"createdBy"`
	Items                []VoucherItemResponse   `json:"items,omitempty"`
	Entries              []JournalEntryResponse  `json:"entries,omitempty"`
	Movements            []StockMovementResponse `json:"movements,omitempty"`
}

// ToVoucherItemResponse converts a domain.VoucherItem to a VoucherItemResponse DTO.
func ToVoucherItemResponse(item *domain.VoucherItem) VoucherItemResponse {
	return VoucherItemResponse{
		ItemID:           item.ItemID,
		ProductID:        item.ProductID,
		AccountID:        item.AccountID,
		Description:      item.Description,
		InitialQuantity:  item.InitialQuantity,
		Count:            item.Count,
		DeductionPerUnit: item.DeductionPerUnit,
		FinalQuantity:    item.FinalQuantity,
		Rate:             item.Rate,
		Amount:           item.Amount,
		DiscountPercent:  item.DiscountPercent,
		DiscountAmount:   item.DiscountAmount,
		TaxableAmount:    item.TaxableAmount,
		TaxRate:          item.TaxRate,
		TaxAmount:        item.TaxAmount,
		Debit:            item.Debit,
		Credit:           item.Credit,
	}
}

// ToJournalEntryResponses converts domain journal entries to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = JournalEntryResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			EntryDate: e.EntryDate,
			Debit:     e.Debit,
			Credit:    e.Credit,
			IsManual:  e.IsManual,
			Narration: e.Narration,
		}
	}
	return responses
}

// ToStockMovementResponses converts domain stock movements to DTOs.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = StockMovementResponse{
			MovementID:   m.MovementID,
			ProductID:    m.ProductID,
			Direction:    string(m.Direction),
			Quantity:     m.Quantity,
			Rate:         m.Rate,
			Amount:       m.Amount,
			MovementDate: m.MovementDate,
		}
	}
	return responses
}

// ToVoucherResponse converts a domain.Voucher with its related records to a
// VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher, entries []domain.JournalEntry, movements []domain.StockMovement) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:            v.VoucherID,
		VoucherNumber:        v.VoucherNumber,
		VoucherType:          v.VoucherType,
		VoucherDate:          v.VoucherDate,
		PartyID:              v.PartyID,
		Subtotal:             v.Subtotal,
		DiscountRate:         v.DiscountRate,
		DiscountAmount:       v.DiscountAmount,
		TotalAmount:          v.TotalAmount,
		TaxTotal:             v.TaxTotal,
		GrandTotal:           v.GrandTotal(),
		PaidFromAccountID:    v.PaidFromAccountID,
		Narration:            v.Narration,
		Status:               v.Status,
		PaymentStatus:        v.PaymentStatus,
		CreatedFromInvoiceID: v.CreatedFromInvoiceID,
		CreatedAt:            v.CreatedAt,
		CreatedBy:            v.CreatedBy,
	}
	if len(v.Items) > 0 {
		resp.Items = make([]VoucherItemResponse, len(v.Items))
		for i, item := range v.Items {
			resp.Items[i] = ToVoucherItemResponse(&item)
		}
	}
	if len(entries) > 0 {
		resp.Entries = ToJournalEntryResponses(entries)
	}
	if len(movements) > 0 {
		resp.Movements = ToStockMovementResponses(movements)
	}
	return resp
}

// ListVouchersParams defines query parameters for listing vouchers. Dates use
// the 2006-01-02 layout.
type ListVouchersParams struct {
	VoucherType *string `form:"voucherType" binding:"omitempty,oneof=sales_invoice purchase_invoice sales_return purchase_return payment receipt journal opening_balance opening_stock"`
	PartyID     *string `form:"partyID"`
	FromDate    *string `form:"fromDate"`
	ToDate      *string `form:"toDate"`
	Limit       int     `form:"limit,default=20"`
	NextToken   *string `form:"nextToken"`
}

// ListVouchersResponse wraps a page of vouchers with the next-page token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}
