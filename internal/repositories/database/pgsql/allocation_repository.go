package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/munimji/munim_backend/internal/models"
	"github.com/munimji/munim_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxAllocationRepository persists the links between settlement vouchers and
// the invoices they pay down. Every write is transaction-scoped because the
// invoice's payment status must be recomputed in the same transaction.
type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for payment allocation data.
func newPgxAllocationRepository(pool DB) portsrepo.AllocationRepositoryWithTx {
	return &PgxAllocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAllocationRepository implements portsrepo.AllocationRepositoryWithTx
var _ portsrepo.AllocationRepositoryWithTx = (*PgxAllocationRepository)(nil)

const allocationColumns = `allocation_id, payment_voucher_id, invoice_voucher_id, allocated_amount, allocation_date, party_id, created_at, created_by, last_updated_at, last_updated_by`

func scanAllocationRow(row pgx.Row) (models.PaymentAllocation, error) {
	var m models.PaymentAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.PaymentVoucherID,
		&m.InvoiceVoucherID,
		&m.AllocatedAmount,
		&m.AllocationDate,
		&m.PartyID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAllocationByID retrieves an allocation by its ID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.PaymentAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM payment_allocations WHERE allocation_id = $1;`

	m, err := scanAllocationRow(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}

	domainAlloc := mapping.ToDomainPaymentAllocation(m)
	return &domainAlloc, nil
}

// ListAllocationsByInvoice retrieves all allocations applied to an invoice.
func (r *PgxAllocationRepository) ListAllocationsByInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.PaymentAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM payment_allocations WHERE invoice_voucher_id = $1 ORDER BY allocation_date, created_at;`
	return r.listAllocations(ctx, query, invoiceVoucherID)
}

// ListAllocationsByPayment retrieves all allocations made by a payment voucher.
func (r *PgxAllocationRepository) ListAllocationsByPayment(ctx context.Context, paymentVoucherID string) ([]domain.PaymentAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM payment_allocations WHERE payment_voucher_id = $1 ORDER BY allocation_date, created_at;`
	return r.listAllocations(ctx, query, paymentVoucherID)
}

func (r *PgxAllocationRepository) listAllocations(ctx context.Context, query string, voucherID string) ([]domain.PaymentAllocation, error) {
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	allocations := []models.PaymentAllocation{}
	for rows.Next() {
		m, err := scanAllocationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row for voucher %s: %w", voucherID, err)
		}
		allocations = append(allocations, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows for voucher %s: %w", voucherID, err)
	}

	return mapping.ToDomainPaymentAllocationSlice(allocations), nil
}

// SumAllocationsForInvoice returns the total allocated amount for an invoice.
func (r *PgxAllocationRepository) SumAllocationsForInvoice(ctx context.Context, invoiceVoucherID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(allocated_amount), 0) FROM payment_allocations WHERE invoice_voucher_id = $1;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, invoiceVoucherID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations for invoice %s: %w", invoiceVoucherID, err)
	}
	return total, nil
}

// SumAllocationsForInvoiceInTx returns the total allocated amount for an
// invoice as seen inside the transaction.
func (r *PgxAllocationRepository) SumAllocationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(allocated_amount), 0) FROM payment_allocations WHERE invoice_voucher_id = $1;`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query, invoiceVoucherID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations for invoice %s: %w", invoiceVoucherID, err)
	}
	return total, nil
}

// InsertAllocationInTx persists a new allocation within an existing transaction.
func (r *PgxAllocationRepository) InsertAllocationInTx(ctx context.Context, tx pgx.Tx, allocation domain.PaymentAllocation) error {
	m := mapping.ToModelPaymentAllocation(allocation)

	query := `
		INSERT INTO payment_allocations (allocation_id, payment_voucher_id, invoice_voucher_id, allocated_amount, allocation_date, party_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.AllocationID,
		m.PaymentVoucherID,
		m.InvoiceVoucherID,
		m.AllocatedAmount,
		m.AllocationDate,
		m.PartyID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: allocation %s already exists", apperrors.ErrDuplicate, m.AllocationID)
		}
		return fmt.Errorf("failed to insert allocation %s: %w", m.AllocationID, err)
	}
	return nil
}

// DeleteAllocationInTx removes a single allocation within an existing transaction.
func (r *PgxAllocationRepository) DeleteAllocationInTx(ctx context.Context, tx pgx.Tx, allocationID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM payment_allocations WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", allocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAllocationsByPaymentInTx removes every allocation owned by a payment
// voucher and returns the distinct invoice voucher ids that lost coverage, so
// the caller can recompute their payment status.
func (r *PgxAllocationRepository) DeleteAllocationsByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentVoucherID string) ([]string, error) {
	query := `DELETE FROM payment_allocations WHERE payment_voucher_id = $1 RETURNING invoice_voucher_id;`

	rows, err := tx.Query(ctx, query, paymentVoucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete allocations for payment %s: %w", paymentVoucherID, err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	invoiceIDs := []string{}
	for rows.Next() {
		var invoiceID string
		if err := rows.Scan(&invoiceID); err != nil {
			return nil, fmt.Errorf("failed to scan deallocated invoice id for payment %s: %w", paymentVoucherID, err)
		}
		if !seen[invoiceID] {
			seen[invoiceID] = true
			invoiceIDs = append(invoiceIDs, invoiceID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deallocated invoice ids for payment %s: %w", paymentVoucherID, err)
	}

	return invoiceIDs, nil
}

// DeleteAllocationsByInvoiceInTx removes every allocation applied to an invoice.
func (r *PgxAllocationRepository) DeleteAllocationsByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payment_allocations WHERE invoice_voucher_id = $1;`, invoiceVoucherID); err != nil {
		return fmt.Errorf("failed to delete allocations for invoice %s: %w", invoiceVoucherID, err)
	}
	return nil
}
