package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationReader defines read operations for payment allocation data
type AllocationReader interface {
	// FindAllocationByID retrieves a specific allocation by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.PaymentAllocation, error)

	// ListAllocationsByInvoice retrieves all allocations applied to an invoice.
	ListAllocationsByInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.PaymentAllocation, error)

	// ListAllocationsByPayment retrieves all allocations made by a payment voucher.
	ListAllocationsByPayment(ctx context.Context, paymentVoucherID string) ([]domain.PaymentAllocation, error)

	// SumAllocationsForInvoice returns the total allocated amount for an invoice.
	SumAllocationsForInvoice(ctx context.Context, invoiceVoucherID string) (decimal.Decimal, error)
}

// AllocationWriter defines write operations for payment allocation data. All
// writes are transaction-scoped: the caller owns the transaction so that the
// invoice's payment status can be recomputed atomically with the change.
type AllocationWriter interface {
	// InsertAllocationInTx persists a new allocation within an existing transaction.
	InsertAllocationInTx(ctx context.Context, tx pgx.Tx, allocation domain.PaymentAllocation) error

	// DeleteAllocationInTx removes a single allocation within an existing transaction.
	DeleteAllocationInTx(ctx context.Context, tx pgx.Tx, allocationID string) error

	// DeleteAllocationsByPaymentInTx removes every allocation owned by a
	// payment voucher and returns the distinct invoice voucher ids affected.
	DeleteAllocationsByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentVoucherID string) ([]string, error)

	// DeleteAllocationsByInvoiceInTx removes every allocation applied to an invoice.
	DeleteAllocationsByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) error

	// SumAllocationsForInvoiceInTx returns the total allocated amount for an
	// invoice as seen inside the transaction.
	SumAllocationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) (decimal.Decimal, error)
}

// AllocationRepositoryFacade combines all allocation-related repository interfaces
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}

// AllocationRepositoryWithTx extends AllocationRepositoryFacade with transaction capabilities
type AllocationRepositoryWithTx interface {
	AllocationRepositoryFacade
	TransactionManager
}
