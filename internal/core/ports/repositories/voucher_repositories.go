package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/core/domain"
)

// ListVouchersFilter narrows a voucher listing.
type ListVouchersFilter struct {
	VoucherType *domain.VoucherType
	PartyID     *string
	FromDate    *time.Time
	ToDate      *time.Time
}

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header by its unique identifier,
	// including soft-deleted vouchers.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindVouchersByIDs retrieves multiple voucher headers keyed by id.
	FindVouchersByIDs(ctx context.Context, voucherIDs []string) (map[string]domain.Voucher, error)

	// FindVoucherItems retrieves the line items of a voucher.
	FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error)

	// FindJournalEntriesByVoucherID retrieves the journal entries of a voucher.
	FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error)

	// FindStockMovementsByVoucherID retrieves the stock movements of a voucher.
	FindStockMovementsByVoucherID(ctx context.Context, voucherID string) ([]domain.StockMovement, error)

	// ListVouchers retrieves a paginated list of non-deleted vouchers using
	// token-based pagination, newest first. It returns the vouchers and a
	// token for the next page.
	ListVouchers(ctx context.Context, filter ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// FindSettlementsForInvoice retrieves the non-deleted payment/receipt
	// vouchers that were created specifically to settle the given invoice.
	FindSettlementsForInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for voucher data. SaveVoucher is
// self-contained; the *InTx methods compose into caller-managed transactions
// for regenerate-on-edit and type-dependent deletes.
type VoucherWriter interface {
	// SaveVoucher atomically assigns the next voucher number and persists the
	// header, items, journal entries and stock movements. It returns the
	// assigned voucher number.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error)

	// CreateVoucherInTx performs the same work as SaveVoucher inside an
	// existing transaction.
	CreateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error)

	// UpdateVoucherHeaderInTx rewrites the mutable header fields of a voucher.
	UpdateVoucherHeaderInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error

	// InsertVoucherItemsInTx inserts line items for a voucher.
	InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error

	// InsertJournalEntriesInTx inserts journal entries for a voucher.
	InsertJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error

	// InsertStockMovementsInTx inserts stock movements for a voucher.
	InsertStockMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.StockMovement) error

	// DeleteVoucherItemsInTx removes all line items of a voucher.
	DeleteVoucherItemsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error

	// DeleteJournalEntriesInTx removes all journal entries of a voucher.
	DeleteJournalEntriesInTx(ctx context.Context, tx pgx.Tx, voucherID string) error

	// DeleteStockMovementsInTx removes all stock movements of a voucher.
	DeleteStockMovementsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error

	// SoftDeleteVoucher marks a voucher header as deleted.
	SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error

	// SoftDeleteVoucherInTx marks a voucher header as deleted within an
	// existing transaction.
	SoftDeleteVoucherInTx(ctx context.Context, tx pgx.Tx, voucherID string, userID string, now time.Time) error

	// UpdatePaymentStatusInTx sets the payment status of an invoice voucher.
	UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, voucherID string, status domain.PaymentStatus, userID string, now time.Time) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
