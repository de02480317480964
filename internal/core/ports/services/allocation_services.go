package services

import (
	"context"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/dto"
)

// AllocationReaderSvc defines read operations for payment allocations
type AllocationReaderSvc interface {
	// ListAllocationsByInvoice retrieves all allocations applied to an invoice.
	ListAllocationsByInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.PaymentAllocation, error)

	// ListAllocationsByPayment retrieves all allocations made by a payment voucher.
	ListAllocationsByPayment(ctx context.Context, paymentVoucherID string) ([]domain.PaymentAllocation, error)
}

// AllocationWriterSvc defines the allocation engine operations.
type AllocationWriterSvc interface {
	// CreateAllocation applies part of a payment/receipt voucher against an
	// invoice and recomputes the invoice's payment status atomically.
	CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest, userID string) (*domain.PaymentAllocation, error)

	// DeleteAllocation removes an allocation and recomputes the affected
	// invoice's payment status atomically.
	DeleteAllocation(ctx context.Context, allocationID string, userID string) error

	// CreateQuickPayment creates a settling payment/receipt voucher (type
	// chosen by the invoice's party type) together with its allocation in one
	// transaction.
	CreateQuickPayment(ctx context.Context, req dto.QuickPaymentRequest, userID string) (*domain.Voucher, *domain.PaymentAllocation, error)
}

// AllocationSvcFacade combines all allocation-related service interfaces
type AllocationSvcFacade interface {
	AllocationReaderSvc
	AllocationWriterSvc
}
