package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
	"github.com/munimji/munim_backend/internal/utils/accounting"
)

var (
	ErrOverAllocation      = fmt.Errorf("allocations exceed the invoice grand total: %w", apperrors.ErrValidation)
	ErrNotSettlementType   = fmt.Errorf("voucher is not a payment or receipt: %w", apperrors.ErrValidation)
	ErrNotInvoiceType      = fmt.Errorf("voucher is not an invoice: %w", apperrors.ErrValidation)
	ErrSettlementTypePair  = fmt.Errorf("payments settle purchase invoices and receipts settle sales invoices: %w", apperrors.ErrValidation)
	ErrInvoiceWithoutParty = fmt.Errorf("invoice has no party to settle against: %w", apperrors.ErrValidation)
)

// allocationService applies settlement vouchers against invoices and keeps
// each invoice's payment status in step with its allocations. The payment
// side is deliberately not checked against its own unallocated balance.
type allocationService struct {
	allocationRepo portsrepo.AllocationRepositoryWithTx
	voucherRepo    portsrepo.VoucherRepositoryWithTx
	voucherSvc     portssvc.VoucherPosterSvc
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(allocationRepo portsrepo.AllocationRepositoryWithTx, voucherRepo portsrepo.VoucherRepositoryWithTx, voucherSvc portssvc.VoucherPosterSvc) portssvc.AllocationSvcFacade {
	return &allocationService{
		allocationRepo: allocationRepo,
		voucherRepo:    voucherRepo,
		voucherSvc:     voucherSvc,
	}
}

// Ensure allocationService implements the portssvc.AllocationSvcFacade interface
var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// ListAllocationsByInvoice retrieves all allocations applied to an invoice.
func (s *allocationService) ListAllocationsByInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.PaymentAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allocations, err := s.allocationRepo.ListAllocationsByInvoice(ctx, invoiceVoucherID)
	if err != nil {
		logger.Error("Failed to list allocations by invoice", slog.String("error", err.Error()), slog.String("invoice_voucher_id", invoiceVoucherID))
		return nil, fmt.Errorf("failed to list allocations for invoice %s: %w", invoiceVoucherID, err)
	}
	return allocations, nil
}

// ListAllocationsByPayment retrieves all allocations made by a payment voucher.
func (s *allocationService) ListAllocationsByPayment(ctx context.Context, paymentVoucherID string) ([]domain.PaymentAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allocations, err := s.allocationRepo.ListAllocationsByPayment(ctx, paymentVoucherID)
	if err != nil {
		logger.Error("Failed to list allocations by payment", slog.String("error", err.Error()), slog.String("payment_voucher_id", paymentVoucherID))
		return nil, fmt.Errorf("failed to list allocations for payment %s: %w", paymentVoucherID, err)
	}
	return allocations, nil
}

// fetchLiveVoucher returns a voucher that exists and is not soft-deleted.
func (s *allocationService) fetchLiveVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: voucher %s not found", apperrors.ErrValidation, voucherID)
		}
		return nil, fmt.Errorf("failed to fetch voucher %s: %w", voucherID, err)
	}
	if voucher.DeletedAt != nil {
		return nil, fmt.Errorf("%w: voucher %s is deleted", apperrors.ErrValidation, voucherID)
	}
	return voucher, nil
}

// CreateAllocation applies part of a payment/receipt voucher against an
// invoice and recomputes the invoice's payment status atomically. The insert
// happens first so the over-allocation check reads the would-be total.
func (s *allocationService) CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest, userID string) (*domain.PaymentAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: allocation amount must be positive", apperrors.ErrValidation)
	}

	payment, err := s.fetchLiveVoucher(ctx, req.PaymentVoucherID)
	if err != nil {
		return nil, err
	}
	if !payment.VoucherType.IsSettlement() {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotSettlementType, payment.VoucherNumber, payment.VoucherType)
	}

	invoice, err := s.fetchLiveVoucher(ctx, req.InvoiceVoucherID)
	if err != nil {
		return nil, err
	}
	if !invoice.VoucherType.IsInvoice() {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotInvoiceType, invoice.VoucherNumber, invoice.VoucherType)
	}
	if (payment.VoucherType == domain.Payment) != (invoice.VoucherType == domain.PurchaseInvoice) {
		return nil, fmt.Errorf("%w: %s against %s", ErrSettlementTypePair, payment.VoucherType, invoice.VoucherType)
	}

	now := time.Now().UTC()
	allocation := domain.PaymentAllocation{
		AllocationID:     uuid.NewString(),
		PaymentVoucherID: payment.VoucherID,
		InvoiceVoucherID: invoice.VoucherID,
		AllocatedAmount:  req.Amount,
		AllocationDate:   now,
		PartyID:          invoice.PartyID,
		AuditFields:      auditNow(userID, now),
	}

	tx, err := s.allocationRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.allocationRepo.Rollback(ctx, tx) }()

	if err := s.allocationRepo.InsertAllocationInTx(ctx, tx, allocation); err != nil {
		return nil, err
	}

	total, err := s.allocationRepo.SumAllocationsForInvoiceInTx(ctx, tx, invoice.VoucherID)
	if err != nil {
		return nil, err
	}
	grand := invoice.GrandTotal()
	if total.GreaterThan(grand.Add(accounting.Tolerance)) {
		return nil, fmt.Errorf("%w: %s allocated against %s on invoice %s", ErrOverAllocation, total, grand, invoice.VoucherNumber)
	}

	status := accounting.AllocationStatus(total, grand)
	if err := s.voucherRepo.UpdatePaymentStatusInTx(ctx, tx, invoice.VoucherID, status, userID, now); err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit allocation", slog.String("error", err.Error()), slog.String("invoice_voucher_id", invoice.VoucherID))
		return nil, err
	}

	logger.Info("Allocation created",
		slog.String("allocation_id", allocation.AllocationID),
		slog.String("payment_voucher_id", payment.VoucherID),
		slog.String("invoice_voucher_id", invoice.VoucherID),
		slog.String("status", string(status)))
	return &allocation, nil
}

// DeleteAllocation removes an allocation and recomputes the affected
// invoice's payment status atomically.
func (s *allocationService) DeleteAllocation(ctx context.Context, allocationID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find allocation", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		}
		return fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}

	now := time.Now().UTC()
	tx, err := s.allocationRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.allocationRepo.Rollback(ctx, tx) }()

	if err := s.allocationRepo.DeleteAllocationInTx(ctx, tx, allocationID); err != nil {
		return err
	}
	if err := s.recomputeInvoiceStatusInTx(ctx, tx, allocation.InvoiceVoucherID, userID, now); err != nil {
		return err
	}

	if err := s.allocationRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit allocation delete", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		return err
	}

	logger.Info("Allocation deleted", slog.String("allocation_id", allocationID), slog.String("invoice_voucher_id", allocation.InvoiceVoucherID))
	return nil
}

// CreateQuickPayment settles an invoice in one step: a receipt (sales
// invoice) or payment (purchase invoice) voucher is derived through the
// posting engine and persisted together with its allocation.
func (s *allocationService) CreateQuickPayment(ctx context.Context, req dto.QuickPaymentRequest, userID string) (*domain.Voucher, *domain.PaymentAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.fetchLiveVoucher(ctx, req.InvoiceVoucherID)
	if err != nil {
		return nil, nil, err
	}
	if !invoice.VoucherType.IsInvoice() {
		return nil, nil, fmt.Errorf("%w: %s is a %s", ErrNotInvoiceType, invoice.VoucherNumber, invoice.VoucherType)
	}
	if invoice.PartyID == nil {
		return nil, nil, fmt.Errorf("%w: invoice %s", ErrInvoiceWithoutParty, invoice.VoucherNumber)
	}

	settlementType := domain.Receipt
	if invoice.VoucherType == domain.PurchaseInvoice {
		settlementType = domain.Payment
	}
	narration := req.Narration
	if narration == "" {
		narration = "Settlement of " + invoice.VoucherNumber
	}

	prepared, err := s.voucherSvc.PrepareVoucher(ctx, dto.CreateVoucherRequest{
		VoucherType:       settlementType,
		VoucherDate:       req.Date,
		PartyID:           invoice.PartyID,
		PaidFromAccountID: &req.PaidFromAccountID,
		Narration:         narration,
		Items:             []dto.VoucherItemRequest{{Amount: req.Amount}},
	}, userID)
	if err != nil {
		return nil, nil, err
	}
	prepared.Voucher.CreatedFromInvoiceID = &invoice.VoucherID

	now := time.Now().UTC()
	allocation := domain.PaymentAllocation{
		AllocationID:     uuid.NewString(),
		PaymentVoucherID: prepared.Voucher.VoucherID,
		InvoiceVoucherID: invoice.VoucherID,
		AllocatedAmount:  req.Amount,
		AllocationDate:   req.Date,
		PartyID:          invoice.PartyID,
		AuditFields:      auditNow(userID, now),
	}

	tx, err := s.allocationRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = s.allocationRepo.Rollback(ctx, tx) }()

	voucherNumber, err := s.voucherRepo.CreateVoucherInTx(ctx, tx, prepared.Voucher, prepared.Items, prepared.Entries, prepared.Movements)
	if err != nil {
		logger.Error("Failed to save quick payment voucher", slog.String("error", err.Error()), slog.String("invoice_voucher_id", invoice.VoucherID))
		return nil, nil, err
	}

	if err := s.allocationRepo.InsertAllocationInTx(ctx, tx, allocation); err != nil {
		return nil, nil, err
	}

	total, err := s.allocationRepo.SumAllocationsForInvoiceInTx(ctx, tx, invoice.VoucherID)
	if err != nil {
		return nil, nil, err
	}
	grand := invoice.GrandTotal()
	if total.GreaterThan(grand.Add(accounting.Tolerance)) {
		return nil, nil, fmt.Errorf("%w: %s allocated against %s on invoice %s", ErrOverAllocation, total, grand, invoice.VoucherNumber)
	}

	status := accounting.AllocationStatus(total, grand)
	if err := s.voucherRepo.UpdatePaymentStatusInTx(ctx, tx, invoice.VoucherID, status, userID, now); err != nil {
		return nil, nil, err
	}

	if err := s.allocationRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit quick payment", slog.String("error", err.Error()), slog.String("invoice_voucher_id", invoice.VoucherID))
		return nil, nil, err
	}

	voucher := prepared.Voucher
	voucher.VoucherNumber = voucherNumber
	voucher.Items = prepared.Items

	logger.Info("Quick payment created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucherNumber),
		slog.String("invoice_voucher_id", invoice.VoucherID),
		slog.String("status", string(status)))
	return &voucher, &allocation, nil
}

// recomputeInvoiceStatusInTx re-derives an invoice's payment status from the
// allocations visible inside the transaction. Gone or deleted invoices are
// left alone.
func (s *allocationService) recomputeInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, userID string, now time.Time) error {
	invoice, err := s.voucherRepo.FindVoucherByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if invoice.DeletedAt != nil {
		return nil
	}

	total, err := s.allocationRepo.SumAllocationsForInvoiceInTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	status := accounting.AllocationStatus(total, invoice.GrandTotal())
	return s.voucherRepo.UpdatePaymentStatusInTx(ctx, tx, invoiceID, status, userID, now)
}
