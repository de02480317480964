package services

import (
	"context"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/dto"
)

// PreparedVoucher is a fully derived voucher ready for persistence: header
// totals computed, journal entries generated from the type's template, stock
// movements resolved. Nothing has been written yet.
type PreparedVoucher struct {
	Voucher   domain.Voucher
	Items     []domain.VoucherItem
	Entries   []domain.JournalEntry
	Movements []domain.StockMovement
}

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its items, journal entries and
	// stock movements.
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, []domain.JournalEntry, []domain.StockMovement, error)

	// ListVouchers retrieves a paginated list of vouchers.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the posting engine operations.
type VoucherWriterSvc interface {
	// CreateVoucher validates a voucher request, derives journal entries and
	// stock movements for its type, and persists everything atomically with a
	// freshly assigned voucher number.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error)

	// UpdateVoucher replaces a voucher's items, journal entries and stock
	// movements with a fresh derivation from the request. The voucher number
	// is preserved. Allocations owned by a payment/receipt voucher are
	// removed and the affected invoices recomputed.
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// DeleteVoucher soft-deletes the header. Invoice vouchers additionally
	// cascade: journal entries, stock movements, allocations and any
	// quick-payment vouchers created to settle them are removed.
	DeleteVoucher(ctx context.Context, voucherID string, userID string) error
}

// VoucherPosterSvc exposes the template derivation step for composite flows
// (quick payments) that persist the voucher inside their own transaction.
type VoucherPosterSvc interface {
	// PrepareVoucher validates the request and derives the voucher, items,
	// entries and movements without persisting anything.
	PrepareVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*PreparedVoucher, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	VoucherPosterSvc
}
