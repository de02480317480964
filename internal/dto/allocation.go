package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAllocationRequest defines the data needed to apply part of a payment
// or receipt voucher against an invoice voucher.
type CreateAllocationRequest struct {
	PaymentVoucherID string          `json:"paymentVoucherID" binding:"required,uuid"`
	InvoiceVoucherID string          `json:"invoiceVoucherID" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
}

// QuickPaymentRequest defines the data needed to settle an invoice directly:
// a settlement voucher and its allocation are created in one step.
type QuickPaymentRequest struct {
	InvoiceVoucherID  string          `json:"invoiceVoucherID" binding:"required,uuid"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaidFromAccountID string          `json:"paidFromAccountID" binding:"required,uuid"`
	Date              time.Time       `json:"date" binding:"required"`
	Narration         string          `json:"narration"`
}

// AllocationResponse defines the data returned for a payment allocation.
type AllocationResponse struct {
	AllocationID     string          `json:"allocationID"`
	PaymentVoucherID string          `json:"paymentVoucherID"`
	InvoiceVoucherID string          `json:"invoiceVoucherID"`
	AllocatedAmount  decimal.Decimal `json:"allocatedAmount"`
	AllocationDate   time.Time       `json:"allocationDate"`
	PartyID          *string         `json:"partyID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// QuickPaymentResponse pairs the created settlement voucher with its allocation.
type QuickPaymentResponse struct {
	Voucher    VoucherResponse    `json:"voucher"`
	Allocation AllocationResponse `json:"allocation"`
}

// ToAllocationResponse converts a domain.PaymentAllocation to an AllocationResponse DTO.
func ToAllocationResponse(a *domain.PaymentAllocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:     a.AllocationID,
		PaymentVoucherID: a.PaymentVoucherID,
		InvoiceVoucherID: a.InvoiceVoucherID,
		AllocatedAmount:  a.AllocatedAmount,
		AllocationDate:   a.AllocationDate,
		PartyID:          a.PartyID,
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
	}
}

// ToListAllocationResponse converts domain allocations to DTOs.
func ToListAllocationResponse(allocations []domain.PaymentAllocation) []AllocationResponse {
	responses := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		responses[i] = ToAllocationResponse(&allocations[i])
	}
	return responses
}

// ListAllocationsParams defines query parameters for listing allocations.
// Exactly one of the two voucher filters must be given.
type ListAllocationsParams struct {
	InvoiceVoucherID *string `form:"invoiceVoucherID" binding:"omitempty,uuid"`
	PaymentVoucherID *string `form:"paymentVoucherID" binding:"omitempty,uuid"`
}

// ListAllocationsResponse wraps the list of allocations.
type ListAllocationsResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
}
