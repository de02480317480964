package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
	"github.com/munimji/munim_backend/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced     = fmt.Errorf("journal debits and credits do not balance: %w", apperrors.ErrValidation)
	ErrEntryNotExclusive     = fmt.Errorf("journal line must carry exactly one of debit or credit: %w", apperrors.ErrValidation)
	ErrAccountMappingMissing = fmt.Errorf("posting account could not be resolved: %w", apperrors.ErrValidation)
	ErrPartyRequired         = fmt.Errorf("voucher type requires a party: %w", apperrors.ErrValidation)
	ErrPaidFromRequired      = fmt.Errorf("payment and receipt vouchers require a paid-from account: %w", apperrors.ErrValidation)
)

// voucherService is the posting engine. Every voucher type is posted through
// the same pipeline: validate the request, calculate line and header amounts,
// derive the double-entry template and stock movements for the type, then
// persist everything in one transaction with a freshly assigned number.
type voucherService struct {
	voucherRepo    portsrepo.VoucherRepositoryWithTx
	allocationRepo portsrepo.AllocationRepositoryWithTx
	accountRepo    portsrepo.AccountRepositoryFacade
	partyRepo      portsrepo.PartyRepositoryFacade
	productRepo    portsrepo.ProductRepositoryFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryWithTx,
	allocationRepo portsrepo.AllocationRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:    voucherRepo,
		allocationRepo: allocationRepo,
		accountRepo:    accountRepo,
		partyRepo:      partyRepo,
		productRepo:    productRepo,
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// systemCodesFor returns the seeded account codes a voucher type posts to.
func systemCodesFor(t domain.VoucherType) []string {
	switch t {
	case domain.SalesInvoice:
		return []string{domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed}
	case domain.PurchaseInvoice:
		return []string{domain.CodePurchases, domain.CodeTaxReceivable, domain.CodeDiscountReceived}
	case domain.SalesReturn:
		return []string{domain.CodeSalesReturns, domain.CodeTaxPayable, domain.CodeDiscountAllowed}
	case domain.PurchaseReturn:
		return []string{domain.CodePurchaseReturns, domain.CodeTaxReceivable, domain.CodeDiscountReceived}
	case domain.Payment:
		return []string{domain.CodeTaxReceivable}
	case domain.Receipt:
		return []string{domain.CodeTaxPayable}
	case domain.OpeningBalance:
		return []string{domain.CodeOpeningBalanceAdj}
	case domain.OpeningStock:
		return []string{domain.CodeInventory, domain.CodeOpeningBalanceAdj}
	}
	return nil
}

// stockDirectionFor maps a voucher type to the direction goods move.
func stockDirectionFor(t domain.VoucherType) domain.StockDirection {
	switch t {
	case domain.PurchaseInvoice, domain.SalesReturn, domain.OpeningStock:
		return domain.StockIn
	default:
		return domain.StockOut
	}
}

func auditNow(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// entryBuilder accumulates the journal entries of one voucher.
type entryBuilder struct {
	voucher *domain.Voucher
	userID  string
	now     time.Time
	entries []domain.JournalEntry
}

func newEntryBuilder(voucher *domain.Voucher, userID string, now time.Time) *entryBuilder {
	return &entryBuilder{voucher: voucher, userID: userID, now: now}
}

func (b *entryBuilder) debit(accountID string, amount decimal.Decimal) {
	b.add(accountID, amount, decimal.Zero, false, "")
}

func (b *entryBuilder) credit(accountID string, amount decimal.Decimal) {
	b.add(accountID, decimal.Zero, amount, false, "")
}

// add appends an entry unless both sides are zero, so legs without a value
// (no tax, no discount) drop out of the template.
func (b *entryBuilder) add(accountID string, debit, credit decimal.Decimal, manual bool, narration string) {
	if debit.IsZero() && credit.IsZero() {
		return
	}
	b.entries = append(b.entries, domain.JournalEntry{
		EntryID:     uuid.NewString(),
		VoucherID:   b.voucher.VoucherID,
		AccountID:   accountID,
		EntryDate:   b.voucher.VoucherDate,
		Debit:       debit,
		Credit:      credit,
		IsManual:    manual,
		Narration:   narration,
		AuditFields: auditNow(b.userID, b.now),
	})
}

// PrepareVoucher validates the request and derives the voucher, its items,
// journal entries and stock movements without persisting anything.
func (s *voucherService) PrepareVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*portssvc.PreparedVoucher, error) {
	if !req.VoucherType.Valid() {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, req.VoucherType)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: voucher requires at least one line", apperrors.ErrValidation)
	}
	if req.VoucherDate.IsZero() {
		return nil, fmt.Errorf("%w: voucher date is required", apperrors.ErrValidation)
	}
	if req.PaidFromAccountID != nil && !req.VoucherType.IsSettlement() {
		return nil, fmt.Errorf("%w: paidFromAccountID only applies to payment and receipt vouchers", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:         uuid.NewString(),
		VoucherType:       req.VoucherType,
		VoucherDate:       req.VoucherDate,
		PartyID:           req.PartyID,
		DiscountRate:      req.DiscountRate,
		PaidFromAccountID: req.PaidFromAccountID,
		Narration:         req.Narration,
		Status:            domain.Posted,
		AuditFields:       auditNow(userID, now),
	}
	if req.VoucherType.IsInvoice() {
		voucher.PaymentStatus = domain.Unpaid
	}

	var (
		items     []domain.VoucherItem
		entries   []domain.JournalEntry
		movements []domain.StockMovement
		totals    accounting.VoucherTotals
		err       error
	)
	switch req.VoucherType {
	case domain.SalesInvoice, domain.PurchaseInvoice, domain.SalesReturn, domain.PurchaseReturn:
		items, entries, movements, totals, err = s.prepareTradeVoucher(ctx, &voucher, req, userID, now)
	case domain.OpeningStock:
		items, entries, movements, totals, err = s.prepareOpeningStock(ctx, &voucher, req, userID, now)
	case domain.Payment, domain.Receipt:
		items, entries, totals, err = s.prepareSettlement(ctx, &voucher, req, userID, now)
	case domain.JournalVoucher, domain.OpeningBalance:
		items, entries, totals, err = s.prepareManualEntries(ctx, &voucher, req, userID, now)
	}
	if err != nil {
		return nil, err
	}

	voucher.Subtotal = totals.Subtotal
	voucher.DiscountAmount = totals.DiscountAmount
	voucher.TotalAmount = totals.TotalAmount
	voucher.TaxTotal = totals.TaxTotal

	// Every template above is constructed balanced; a mismatch here means a
	// template bug, not bad input.
	if !accounting.EntriesBalanced(entries) {
		debit, credit := accounting.SumEntries(entries)
		return nil, apperrors.NewAppError(500,
			fmt.Sprintf("derived entries for %s do not balance: debit %s credit %s", req.VoucherType, debit, credit),
			apperrors.ErrInternal)
	}

	return &portssvc.PreparedVoucher{
		Voucher:   voucher,
		Items:     items,
		Entries:   entries,
		Movements: movements,
	}, nil
}

// prepareTradeVoucher handles the four party-facing product types: both
// invoices and both returns.
func (s *voucherService) prepareTradeVoucher(ctx context.Context, voucher *domain.Voucher, req dto.CreateVoucherRequest, userID string, now time.Time) ([]domain.VoucherItem, []domain.JournalEntry, []domain.StockMovement, accounting.VoucherTotals, error) {
	var none accounting.VoucherTotals

	if req.PartyID == nil || *req.PartyID == "" {
		return nil, nil, nil, none, fmt.Errorf("%w: %s", ErrPartyRequired, req.VoucherType)
	}
	partyAccount, err := s.resolvePartyAccount(ctx, *req.PartyID)
	if err != nil {
		return nil, nil, nil, none, err
	}

	items, err := s.buildProductItems(ctx, voucher, req.Items, userID, now)
	if err != nil {
		return nil, nil, nil, none, err
	}
	totals := accounting.CalculateVoucherTotals(items, req.DiscountRate, req.DiscountAmount)

	system, err := s.resolveSystemAccounts(ctx, systemCodesFor(req.VoucherType))
	if err != nil {
		return nil, nil, nil, none, err
	}

	grand := totals.GrandTotal()
	b := newEntryBuilder(voucher, userID, now)
	switch req.VoucherType {
	case domain.SalesInvoice:
		b.debit(partyAccount.AccountID, grand)
		b.credit(system[domain.CodeSales].AccountID, totals.Subtotal)
		b.credit(system[domain.CodeTaxPayable].AccountID, totals.TaxTotal)
		b.debit(system[domain.CodeDiscountAllowed].AccountID, totals.DiscountAmount)
	case domain.PurchaseInvoice:
		b.debit(system[domain.CodePurchases].AccountID, totals.Subtotal)
		b.debit(system[domain.CodeTaxReceivable].AccountID, totals.TaxTotal)
		b.credit(partyAccount.AccountID, grand)
		b.credit(system[domain.CodeDiscountReceived].AccountID, totals.DiscountAmount)
	case domain.SalesReturn:
		b.debit(system[domain.CodeSalesReturns].AccountID, totals.Subtotal)
		b.debit(system[domain.CodeTaxPayable].AccountID, totals.TaxTotal)
		b.credit(partyAccount.AccountID, grand)
		b.credit(system[domain.CodeDiscountAllowed].AccountID, totals.DiscountAmount)
	case domain.PurchaseReturn:
		b.debit(partyAccount.AccountID, grand)
		b.debit(system[domain.CodeDiscountReceived].AccountID, totals.DiscountAmount)
		b.credit(system[domain.CodePurchaseReturns].AccountID, totals.Subtotal)
		b.credit(system[domain.CodeTaxReceivable].AccountID, totals.TaxTotal)
	}

	movements := buildMovements(voucher, items, stockDirectionFor(req.VoucherType), userID, now)
	return items, b.entries, movements, totals, nil
}

// prepareOpeningStock values initial inventory against the opening
// adjustment account. Lines carry no tax.
func (s *voucherService) prepareOpeningStock(ctx context.Context, voucher *domain.Voucher, req dto.CreateVoucherRequest, userID string, now time.Time) ([]domain.VoucherItem, []domain.JournalEntry, []domain.StockMovement, accounting.VoucherTotals, error) {
	var none accounting.VoucherTotals

	items, err := s.buildProductItems(ctx, voucher, req.Items, userID, now)
	if err != nil {
		return nil, nil, nil, none, err
	}
	for i := range items {
		items[i].TaxRate = decimal.Zero
		items[i].TaxAmount = decimal.Zero
	}
	totals := accounting.CalculateVoucherTotals(items, req.DiscountRate, req.DiscountAmount)

	system, err := s.resolveSystemAccounts(ctx, systemCodesFor(domain.OpeningStock))
	if err != nil {
		return nil, nil, nil, none, err
	}

	b := newEntryBuilder(voucher, userID, now)
	b.debit(system[domain.CodeInventory].AccountID, totals.TotalAmount)
	b.credit(system[domain.CodeOpeningBalanceAdj].AccountID, totals.TotalAmount)

	movements := buildMovements(voucher, items, domain.StockIn, userID, now)
	return items, b.entries, movements, totals, nil
}

// prepareSettlement handles payment and receipt vouchers. Each line is a
// payee amount: the line's account when given, otherwise the header party's
// ledger account. The cash/bank side comes from paidFromAccountID.
func (s *voucherService) prepareSettlement(ctx context.Context, voucher *domain.Voucher, req dto.CreateVoucherRequest, userID string, now time.Time) ([]domain.VoucherItem, []domain.JournalEntry, accounting.VoucherTotals, error) {
	var none accounting.VoucherTotals

	if !req.DiscountRate.IsZero() || !req.DiscountAmount.IsZero() {
		return nil, nil, none, fmt.Errorf("%w: discounts do not apply to %s vouchers", apperrors.ErrValidation, req.VoucherType)
	}
	if req.PaidFromAccountID == nil || *req.PaidFromAccountID == "" {
		return nil, nil, none, fmt.Errorf("%w: %s", ErrPaidFromRequired, req.VoucherType)
	}

	paidFrom, err := s.accountRepo.FindAccountByID(ctx, *req.PaidFromAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, none, fmt.Errorf("%w: paid-from account %s", ErrAccountMappingMissing, *req.PaidFromAccountID)
		}
		return nil, nil, none, fmt.Errorf("failed to fetch paid-from account: %w", err)
	}
	if !paidFrom.IsActive {
		return nil, nil, none, fmt.Errorf("%w: paid-from account %s is inactive", apperrors.ErrValidation, paidFrom.Code)
	}

	var partyAccount *domain.Account
	if req.PartyID != nil && *req.PartyID != "" {
		partyAccount, err = s.resolvePartyAccount(ctx, *req.PartyID)
		if err != nil {
			return nil, nil, none, err
		}
	}

	explicitIDs := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		if line.AccountID != nil && *line.AccountID != "" {
			explicitIDs = append(explicitIDs, *line.AccountID)
		}
	}
	payeeAccounts := map[string]domain.Account{}
	if len(explicitIDs) > 0 {
		payeeAccounts, err = s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(explicitIDs))
		if err != nil {
			return nil, nil, none, fmt.Errorf("failed to fetch payee accounts: %w", err)
		}
	}

	items := make([]domain.VoucherItem, 0, len(req.Items))
	for i, line := range req.Items {
		if !line.Amount.IsPositive() {
			return nil, nil, none, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		if line.TaxRate.IsNegative() {
			return nil, nil, none, fmt.Errorf("%w: line %d tax rate cannot be negative", apperrors.ErrValidation, i+1)
		}

		var payeeID string
		switch {
		case line.AccountID != nil && *line.AccountID != "":
			payee, found := payeeAccounts[*line.AccountID]
			if !found {
				return nil, nil, none, fmt.Errorf("%w: line %d payee account %s", ErrAccountMappingMissing, i+1, *line.AccountID)
			}
			if !payee.IsActive {
				return nil, nil, none, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, payee.Code)
			}
			payeeID = payee.AccountID
		case partyAccount != nil:
			payeeID = partyAccount.AccountID
		default:
			return nil, nil, none, fmt.Errorf("%w: line %d names no payee account and the voucher has no party", ErrAccountMappingMissing, i+1)
		}

		items = append(items, domain.VoucherItem{
			ItemID:        uuid.NewString(),
			VoucherID:     voucher.VoucherID,
			AccountID:     &payeeID,
			Description:   line.Description,
			Amount:        line.Amount,
			TaxableAmount: line.Amount,
			TaxRate:       line.TaxRate,
			TaxAmount:     line.Amount.Mul(line.TaxRate).Div(decimal.NewFromInt(100)),
			AuditFields:   auditNow(userID, now),
		})
	}
	totals := accounting.CalculateVoucherTotals(items, decimal.Zero, decimal.Zero)

	system, err := s.resolveSystemAccounts(ctx, systemCodesFor(req.VoucherType))
	if err != nil {
		return nil, nil, none, err
	}

	grand := totals.GrandTotal()
	b := newEntryBuilder(voucher, userID, now)
	if req.VoucherType == domain.Payment {
		for _, item := range items {
			b.debit(*item.AccountID, item.Amount)
		}
		b.debit(system[domain.CodeTaxReceivable].AccountID, totals.TaxTotal)
		b.credit(paidFrom.AccountID, grand)
	} else {
		b.debit(paidFrom.AccountID, grand)
		for _, item := range items {
			b.credit(*item.AccountID, item.Amount)
		}
		b.credit(system[domain.CodeTaxPayable].AccountID, totals.TaxTotal)
	}

	return items, b.entries, totals, nil
}

// prepareManualEntries handles journal and opening_balance vouchers, whose
// lines are raw debit/credit amounts against named accounts. Journal lines
// must balance on their own and are flagged manual; opening lines are
// inserted as-is and each mirrored against the adjustment account, so any
// set of them balances.
func (s *voucherService) prepareManualEntries(ctx context.Context, voucher *domain.Voucher, req dto.CreateVoucherRequest, userID string, now time.Time) ([]domain.VoucherItem, []domain.JournalEntry, accounting.VoucherTotals, error) {
	var none accounting.VoucherTotals

	if !req.DiscountRate.IsZero() || !req.DiscountAmount.IsZero() {
		return nil, nil, none, fmt.Errorf("%w: discounts do not apply to %s vouchers", apperrors.ErrValidation, req.VoucherType)
	}

	accountIDs := make([]string, 0, len(req.Items))
	debits, credits := decimal.Zero, decimal.Zero
	for i, line := range req.Items {
		if line.AccountID == nil || *line.AccountID == "" {
			return nil, nil, none, fmt.Errorf("%w: line %d names no account", ErrAccountMappingMissing, i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, nil, none, fmt.Errorf("%w: line %d amounts cannot be negative", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return nil, nil, none, fmt.Errorf("%w: line %d", ErrEntryNotExclusive, i+1)
		}
		accountIDs = append(accountIDs, *line.AccountID)
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if req.VoucherType == domain.JournalVoucher && !accounting.WithinTolerance(debits, credits) {
		return nil, nil, none, fmt.Errorf("%w: debits %s credits %s", ErrJournalUnbalanced, debits, credits)
	}

	unique := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, unique)
	if err != nil {
		return nil, nil, none, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range unique {
		account, found := accounts[id]
		if !found {
			return nil, nil, none, fmt.Errorf("%w: account %s", ErrAccountMappingMissing, id)
		}
		if !account.IsActive {
			return nil, nil, none, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}
	}

	var adjustmentID string
	if req.VoucherType == domain.OpeningBalance {
		system, err := s.resolveSystemAccounts(ctx, systemCodesFor(domain.OpeningBalance))
		if err != nil {
			return nil, nil, none, err
		}
		adjustmentID = system[domain.CodeOpeningBalanceAdj].AccountID
	}

	manual := req.VoucherType == domain.JournalVoucher
	items := make([]domain.VoucherItem, 0, len(req.Items))
	b := newEntryBuilder(voucher, userID, now)
	for _, line := range req.Items {
		items = append(items, domain.VoucherItem{
			ItemID:      uuid.NewString(),
			VoucherID:   voucher.VoucherID,
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			AuditFields: auditNow(userID, now),
		})

		b.add(*line.AccountID, line.Debit, line.Credit, manual, line.Description)
		if adjustmentID != "" {
			b.add(adjustmentID, line.Credit, line.Debit, false, "")
		}
	}

	// The economic value of a balanced entry set is one side of it.
	debitTotal, _ := accounting.SumEntries(b.entries)
	totals := accounting.VoucherTotals{
		Subtotal:       debitTotal,
		DiscountAmount: decimal.Zero,
		TotalAmount:    debitTotal,
		TaxTotal:       decimal.Zero,
	}
	return items, b.entries, totals, nil
}

// buildProductItems validates and calculates product lines.
func (s *voucherService) buildProductItems(ctx context.Context, voucher *domain.Voucher, lines []dto.VoucherItemRequest, userID string, now time.Time) ([]domain.VoucherItem, error) {
	productIDs := make([]string, 0, len(lines))
	for i, line := range lines {
		if line.ProductID == nil || *line.ProductID == "" {
			return nil, fmt.Errorf("%w: line %d is missing a product", apperrors.ErrValidation, i+1)
		}
		productIDs = append(productIDs, *line.ProductID)
	}

	products, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	items := make([]domain.VoucherItem, 0, len(lines))
	for i, line := range lines {
		product, found := products[*line.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: line %d references unknown product %s", apperrors.ErrValidation, i+1, *line.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, product.Code)
		}

		description := line.Description
		if description == "" {
			description = product.Name
		}
		item := domain.VoucherItem{
			ItemID:           uuid.NewString(),
			VoucherID:        voucher.VoucherID,
			ProductID:        line.ProductID,
			Description:      description,
			InitialQuantity:  line.InitialQuantity,
			Count:            line.Count,
			DeductionPerUnit: line.DeductionPerUnit,
			Rate:             line.Rate,
			DiscountPercent:  line.DiscountPercent,
			DiscountAmount:   line.DiscountAmount,
			TaxRate:          line.TaxRate,
			AuditFields:      auditNow(userID, now),
		}
		items = append(items, accounting.CalculateLine(item))
	}
	return items, nil
}

// buildMovements records one stock movement per product line. Lines whose
// final quantity works out to zero move nothing and are skipped.
func buildMovements(voucher *domain.Voucher, items []domain.VoucherItem, direction domain.StockDirection, userID string, now time.Time) []domain.StockMovement {
	movements := make([]domain.StockMovement, 0, len(items))
	for _, item := range items {
		if item.ProductID == nil || item.FinalQuantity.IsZero() {
			continue
		}
		movements = append(movements, domain.StockMovement{
			MovementID:   uuid.NewString(),
			VoucherID:    voucher.VoucherID,
			ProductID:    *item.ProductID,
			Direction:    direction,
			Quantity:     item.FinalQuantity,
			Rate:         item.Rate,
			Amount:       item.Amount,
			MovementDate: voucher.VoucherDate,
			AuditFields:  auditNow(userID, now),
		})
	}
	return movements
}

func (s *voucherService) resolvePartyAccount(ctx context.Context, partyID string) (*domain.Account, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party %s not found", apperrors.ErrValidation, partyID)
		}
		return nil, fmt.Errorf("failed to fetch party %s: %w", partyID, err)
	}
	if !party.IsActive {
		return nil, fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, party.Code)
	}

	account, err := s.accountRepo.FindAccountByPartyID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party %s has no ledger account", ErrAccountMappingMissing, party.Code)
		}
		return nil, fmt.Errorf("failed to fetch account for party %s: %w", partyID, err)
	}
	return account, nil
}

func (s *voucherService) resolveSystemAccounts(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system accounts: %w", err)
	}
	for _, code := range codes {
		if _, found := accounts[code]; !found {
			return nil, fmt.Errorf("%w: system account %s", ErrAccountMappingMissing, code)
		}
	}
	return accounts, nil
}

// CreateVoucher validates a voucher request, derives journal entries and
// stock movements for its type, and persists everything atomically with a
// freshly assigned voucher number.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prepared, err := s.PrepareVoucher(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	voucherNumber, err := s.voucherRepo.SaveVoucher(ctx, prepared.Voucher, prepared.Items, prepared.Entries, prepared.Movements)
	if err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("voucher_type", string(req.VoucherType)))
		return nil, err
	}

	voucher := prepared.Voucher
	voucher.VoucherNumber = voucherNumber
	voucher.Items = prepared.Items

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucherNumber),
		slog.String("voucher_type", string(voucher.VoucherType)),
		slog.Int("entry_count", len(prepared.Entries)))
	return &voucher, nil
}

// GetVoucherByID retrieves a voucher with its items, journal entries and
// stock movements.
func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, []domain.JournalEntry, []domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find voucher by ID", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, nil, nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if voucher.DeletedAt != nil {
		return nil, nil, nil, fmt.Errorf("voucher %s is deleted: %w", voucherID, apperrors.ErrNotFound)
	}

	items, err := s.voucherRepo.FindVoucherItems(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch voucher items", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, nil, nil, fmt.Errorf("failed to fetch items for voucher %s: %w", voucherID, err)
	}
	voucher.Items = items

	entries, err := s.voucherRepo.FindJournalEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch journal entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, nil, nil, fmt.Errorf("failed to fetch journal entries for voucher %s: %w", voucherID, err)
	}

	movements, err := s.voucherRepo.FindStockMovementsByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch stock movements", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, nil, nil, fmt.Errorf("failed to fetch stock movements for voucher %s: %w", voucherID, err)
	}

	return voucher, entries, movements, nil
}

// ListVouchers retrieves a paginated list of vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var filter portsrepo.ListVouchersFilter
	if params.VoucherType != nil && *params.VoucherType != "" {
		voucherType := domain.VoucherType(*params.VoucherType)
		if !voucherType.Valid() {
			return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, *params.VoucherType)
		}
		filter.VoucherType = &voucherType
	}
	filter.PartyID = params.PartyID
	if params.FromDate != nil && *params.FromDate != "" {
		from, err := time.Parse("2006-01-02", *params.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fromDate %q, want YYYY-MM-DD", apperrors.ErrValidation, *params.FromDate)
		}
		filter.FromDate = &from
	}
	if params.ToDate != nil && *params.ToDate != "" {
		to, err := time.Parse("2006-01-02", *params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid toDate %q, want YYYY-MM-DD", apperrors.ErrValidation, *params.ToDate)
		}
		filter.ToDate = &to
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  make([]dto.VoucherResponse, len(vouchers)),
		NextToken: nextToken,
	}
	for i := range vouchers {
		resp.Vouchers[i] = dto.ToVoucherResponse(&vouchers[i], nil, nil)
	}
	return resp, nil
}

// UpdateVoucher replaces a voucher's items, journal entries and stock
// movements with a fresh derivation from the request. The voucher number and
// type are preserved.
func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if existing.DeletedAt != nil {
		return nil, fmt.Errorf("voucher %s is deleted: %w", voucherID, apperrors.ErrNotFound)
	}

	prepared, err := s.PrepareVoucher(ctx, dto.CreateVoucherRequest{
		VoucherType:       existing.VoucherType,
		VoucherDate:       req.VoucherDate,
		PartyID:           req.PartyID,
		PaidFromAccountID: req.PaidFromAccountID,
		DiscountRate:      req.DiscountRate,
		DiscountAmount:    req.DiscountAmount,
		Narration:         req.Narration,
		Items:             req.Items,
	}, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucher := prepared.Voucher
	voucher.VoucherID = existing.VoucherID
	voucher.VoucherNumber = existing.VoucherNumber
	voucher.CreatedFromInvoiceID = existing.CreatedFromInvoiceID
	voucher.CreatedAt = existing.CreatedAt
	voucher.CreatedBy = existing.CreatedBy
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	// Point the freshly derived children at the stored voucher id.
	for i := range prepared.Items {
		prepared.Items[i].VoucherID = voucher.VoucherID
	}
	for i := range prepared.Entries {
		prepared.Entries[i].VoucherID = voucher.VoucherID
	}
	for i := range prepared.Movements {
		prepared.Movements[i].VoucherID = voucher.VoucherID
	}

	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	if voucher.VoucherType.IsInvoice() {
		// An edited invoice keeps its allocations; the status is recomputed
		// against the new grand total.
		allocated, err := s.allocationRepo.SumAllocationsForInvoiceInTx(ctx, tx, voucherID)
		if err != nil {
			return nil, err
		}
		voucher.PaymentStatus = accounting.AllocationStatus(allocated, voucher.GrandTotal())
	}

	if err := s.voucherRepo.DeleteJournalEntriesInTx(ctx, tx, voucherID); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.DeleteStockMovementsInTx(ctx, tx, voucherID); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.DeleteVoucherItemsInTx(ctx, tx, voucherID); err != nil {
		return nil, err
	}

	if err := s.voucherRepo.UpdateVoucherHeaderInTx(ctx, tx, voucher); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.InsertVoucherItemsInTx(ctx, tx, prepared.Items); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.InsertJournalEntriesInTx(ctx, tx, prepared.Entries); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.InsertStockMovementsInTx(ctx, tx, prepared.Movements); err != nil {
		return nil, err
	}

	if voucher.VoucherType.IsSettlement() {
		// Rewriting a settlement invalidates what it settled: drop its
		// allocations and recompute the invoices they touched.
		invoiceIDs, err := s.allocationRepo.DeleteAllocationsByPaymentInTx(ctx, tx, voucherID)
		if err != nil {
			return nil, err
		}
		for _, invoiceID := range invoiceIDs {
			if err := s.recomputeInvoiceStatusInTx(ctx, tx, invoiceID, userID, now); err != nil {
				return nil, err
			}
		}
	}

	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit voucher update", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Items = prepared.Items
	logger.Info("Voucher updated", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return &voucher, nil
}

// DeleteVoucher soft-deletes the header. Invoice vouchers cascade; settlement
// vouchers give their allocations back; everything else keeps its rows as an
// audit trail behind the deleted header.
func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if voucher.DeletedAt != nil {
		return fmt.Errorf("voucher %s is already deleted: %w", voucherID, apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	switch {
	case voucher.VoucherType.IsInvoice():
		if err := s.deleteInvoiceCascadeInTx(ctx, tx, voucher, userID, now); err != nil {
			return err
		}
	case voucher.VoucherType.IsSettlement():
		invoiceIDs, err := s.allocationRepo.DeleteAllocationsByPaymentInTx(ctx, tx, voucherID)
		if err != nil {
			return err
		}
		if err := s.voucherRepo.SoftDeleteVoucherInTx(ctx, tx, voucherID, userID, now); err != nil {
			return err
		}
		for _, invoiceID := range invoiceIDs {
			if err := s.recomputeInvoiceStatusInTx(ctx, tx, invoiceID, userID, now); err != nil {
				return err
			}
		}
	default:
		if err := s.voucherRepo.SoftDeleteVoucherInTx(ctx, tx, voucherID, userID, now); err != nil {
			return err
		}
	}

	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit voucher delete", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return err
	}

	logger.Info("Voucher deleted",
		slog.String("voucher_id", voucherID),
		slog.String("voucher_number", voucher.VoucherNumber),
		slog.String("voucher_type", string(voucher.VoucherType)))
	return nil
}

// deleteInvoiceCascadeInTx removes an invoice and everything hanging off it:
// quick payments created to settle it (with their entries and allocations),
// allocations applied from standalone payments, and the invoice's own journal
// entries and stock movements. Other invoices touched by the removed
// allocations get their status recomputed.
func (s *voucherService) deleteInvoiceCascadeInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Voucher, userID string, now time.Time) error {
	settlements, err := s.voucherRepo.FindSettlementsForInvoice(ctx, invoice.VoucherID)
	if err != nil {
		return err
	}
	for _, settlement := range settlements {
		affected, err := s.allocationRepo.DeleteAllocationsByPaymentInTx(ctx, tx, settlement.VoucherID)
		if err != nil {
			return err
		}
		if err := s.voucherRepo.DeleteJournalEntriesInTx(ctx, tx, settlement.VoucherID); err != nil {
			return err
		}
		if err := s.voucherRepo.SoftDeleteVoucherInTx(ctx, tx, settlement.VoucherID, userID, now); err != nil {
			return err
		}
		for _, invoiceID := range affected {
			if invoiceID == invoice.VoucherID {
				continue
			}
			if err := s.recomputeInvoiceStatusInTx(ctx, tx, invoiceID, userID, now); err != nil {
				return err
			}
		}
	}

	if err := s.allocationRepo.DeleteAllocationsByInvoiceInTx(ctx, tx, invoice.VoucherID); err != nil {
		return err
	}
	if err := s.voucherRepo.DeleteJournalEntriesInTx(ctx, tx, invoice.VoucherID); err != nil {
		return err
	}
	if err := s.voucherRepo.DeleteStockMovementsInTx(ctx, tx, invoice.VoucherID); err != nil {
		return err
	}
	return s.voucherRepo.SoftDeleteVoucherInTx(ctx, tx, invoice.VoucherID, userID, now)
}

// recomputeInvoiceStatusInTx re-derives an invoice's payment status from the
// allocations visible inside the transaction.
func (s *voucherService) recomputeInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, userID string, now time.Time) error {
	invoice, err := s.voucherRepo.FindVoucherByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.DeletedAt != nil {
		return nil
	}

	allocated, err := s.allocationRepo.SumAllocationsForInvoiceInTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	status := accounting.AllocationStatus(allocated, invoice.GrandTotal())
	return s.voucherRepo.UpdatePaymentStatusInTx(ctx, tx, invoiceID, status, userID, now)
}

// uniqueStrings returns the unique values of a slice, preserving first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
