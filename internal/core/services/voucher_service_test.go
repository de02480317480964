package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/core/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

// Ensure MockVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVouchersByIDs(ctx context.Context, voucherIDs []string) (map[string]domain.Voucher, error) {
	args := m.Called(ctx, voucherIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherItem), args.Error(1)
}

func (m *MockVoucherRepository) FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockVoucherRepository) FindStockMovementsByVoucherID(ctx context.Context, voucherID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Voucher), returnedNextToken, args.Error(2)
}

func (m *MockVoucherRepository) FindSettlementsForInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.Voucher, error) {
	args := m.Called(ctx, invoiceVoucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error) {
	args := m.Called(ctx, voucher, items, entries, movements)
	return args.String(0), args.Error(1)
}

func (m *MockVoucherRepository) CreateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error) {
	args := m.Called(ctx, tx, voucher, items, entries, movements)
	return args.String(0), args.Error(1)
}

func (m *MockVoucherRepository) UpdateVoucherHeaderInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	args := m.Called(ctx, tx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockVoucherRepository) InsertJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockVoucherRepository) InsertStockMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.StockMovement) error {
	args := m.Called(ctx, tx, movements)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteVoucherItemsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	args := m.Called(ctx, tx, voucherID)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteJournalEntriesInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	args := m.Called(ctx, tx, voucherID)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteStockMovementsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	args := m.Called(ctx, tx, voucherID)
	return args.Error(0)
}

func (m *MockVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) SoftDeleteVoucherInTx(ctx context.Context, tx pgx.Tx, voucherID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, voucherID, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, voucherID string, status domain.PaymentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, voucherID, status, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVoucherRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVoucherRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AllocationRepository ---
type MockAllocationRepository struct {
	mock.Mock
}

// Ensure MockAllocationRepository implements portsrepo.AllocationRepositoryWithTx
var _ portsrepo.AllocationRepositoryWithTx = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.PaymentAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocationsByInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, invoiceVoucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocationsByPayment(ctx context.Context, paymentVoucherID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentVoucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockAllocationRepository) SumAllocationsForInvoice(ctx context.Context, invoiceVoucherID string) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceVoucherID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAllocationRepository) InsertAllocationInTx(ctx context.Context, tx pgx.Tx, allocation domain.PaymentAllocation) error {
	args := m.Called(ctx, tx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeleteAllocationInTx(ctx context.Context, tx pgx.Tx, allocationID string) error {
	args := m.Called(ctx, tx, allocationID)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeleteAllocationsByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentVoucherID string) ([]string, error) {
	args := m.Called(ctx, tx, paymentVoucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAllocationRepository) DeleteAllocationsByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) error {
	args := m.Called(ctx, tx, invoiceVoucherID)
	return args.Error(0)
}

func (m *MockAllocationRepository) SumAllocationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceVoucherID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, invoiceVoucherID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAllocationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAllocationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAllocationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByPartyID(ctx context.Context, partyID string) (*domain.Account, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasJournalEntries(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountNameInTx(ctx context.Context, tx pgx.Tx, partyID string, name string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, partyID, name, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActiveByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, tx, partyID, active, userID, now)
	return args.Error(0)
}

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

// Ensure MockPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, partyType *domain.PartyType, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, partyType, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) HasVoucherReferences(ctx context.Context, partyID string) (bool, error) {
	args := m.Called(ctx, partyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party, account domain.Account) error {
	args := m.Called(ctx, party, account)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) SoftDeleteParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	args := m.Called(ctx, partyID, userID, now)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

// Ensure MockProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) HasReferences(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo    *MockVoucherRepository
	mockAllocationRepo *MockAllocationRepository
	mockAccountRepo    *MockAccountRepository
	mockPartyRepo      *MockPartyRepository
	mockProductRepo    *MockProductRepository
	service            portssvc.VoucherSvcFacade

	userID       string
	customer     domain.Party
	customerAcct domain.Account
	cashAcct     domain.Account
	product      domain.Product
	systemAccts  map[string]domain.Account
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewVoucherService(
		suite.mockVoucherRepo,
		suite.mockAllocationRepo,
		suite.mockAccountRepo,
		suite.mockPartyRepo,
		suite.mockProductRepo,
	)

	suite.userID = uuid.NewString()

	suite.customer = domain.Party{
		PartyID:   uuid.NewString(),
		Code:      "CUST01",
		PartyType: domain.Customer,
		Name:      "Acme Traders",
		IsActive:  true,
	}
	suite.customerAcct = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "CUST01",
		Name:        "Acme Traders",
		AccountType: domain.Asset,
		PartyID:     &suite.customer.PartyID,
		IsActive:    true,
	}
	suite.cashAcct = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeCash,
		Name:        "Cash in Hand",
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
	suite.product = domain.Product{
		ProductID: uuid.NewString(),
		Code:      "WHEAT",
		Name:      "Wheat",
		Unit:      "kg",
		IsActive:  true,
	}

	suite.systemAccts = map[string]domain.Account{}
	for _, code := range []string{
		domain.CodeSales, domain.CodeSalesReturns,
		domain.CodePurchases, domain.CodePurchaseReturns,
		domain.CodeTaxPayable, domain.CodeTaxReceivable,
		domain.CodeDiscountAllowed, domain.CodeDiscountReceived,
		domain.CodeInventory, domain.CodeOpeningBalanceAdj,
	} {
		suite.systemAccts[code] = domain.Account{
			AccountID: uuid.NewString(),
			Code:      code,
			IsSystem:  true,
			IsActive:  true,
		}
	}
}

// systemAccountsFor builds the map FindAccountsByCodes would return for codes.
func (suite *VoucherServiceTestSuite) systemAccountsFor(codes ...string) map[string]domain.Account {
	result := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		result[code] = suite.systemAccts[code]
	}
	return result
}

// expectCustomerLookup wires the party and paired-account fetches.
func (suite *VoucherServiceTestSuite) expectCustomerLookup(ctx context.Context) {
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(&suite.customer, nil).Once()
	suite.mockAccountRepo.On("FindAccountByPartyID", ctx, suite.customer.PartyID).Return(&suite.customerAcct, nil).Once()
}

// findEntry returns the entry posted to the given account, failing the test
// when it is absent.
func (suite *VoucherServiceTestSuite) findEntry(entries []domain.JournalEntry, accountID string) domain.JournalEntry {
	for _, e := range entries {
		if e.AccountID == accountID {
			return e
		}
	}
	suite.FailNowf("entry missing", "no journal entry posted to account %s", accountID)
	return domain.JournalEntry{}
}

func salesInvoiceRequest(partyID, productID string) dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		VoucherType: domain.SalesInvoice,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		PartyID:     &partyID,
		Items: []dto.VoucherItemRequest{
			{
				ProductID:       &productID,
				InitialQuantity: decimal.NewFromInt(10),
				Rate:            decimal.NewFromInt(100),
				TaxRate:         decimal.NewFromInt(18),
			},
		},
	}
}

// --- PrepareVoucher ---

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_SalesInvoice() {
	ctx := context.Background()
	req := salesInvoiceRequest(suite.customer.PartyID, suite.product.ProductID)

	suite.expectCustomerLookup(ctx)
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed}).
		Return(suite.systemAccountsFor(domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed), nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(prepared)

	suite.Equal("1000", prepared.Voucher.Subtotal.String())
	suite.Equal("1000", prepared.Voucher.TotalAmount.String())
	suite.Equal("180", prepared.Voucher.TaxTotal.String())
	suite.Equal("1180", prepared.Voucher.GrandTotal().String())
	suite.Equal(domain.Posted, prepared.Voucher.Status)
	suite.Equal(domain.Unpaid, prepared.Voucher.PaymentStatus)

	// Debtor carries the grand total; sales and tax take the credit side. The
	// discount leg is zero and must not appear.
	suite.Require().Len(prepared.Entries, 3)
	debtor := suite.findEntry(prepared.Entries, suite.customerAcct.AccountID)
	suite.Equal("1180", debtor.Debit.String())
	sales := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodeSales].AccountID)
	suite.Equal("1000", sales.Credit.String())
	tax := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodeTaxPayable].AccountID)
	suite.Equal("180", tax.Credit.String())

	suite.Require().Len(prepared.Movements, 1)
	suite.Equal(domain.StockOut, prepared.Movements[0].Direction)
	suite.Equal("10", prepared.Movements[0].Quantity.String())
	suite.Equal(suite.product.ProductID, prepared.Movements[0].ProductID)

	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_PurchaseInvoiceMirrorsSides() {
	ctx := context.Background()
	supplier := domain.Party{
		PartyID:   uuid.NewString(),
		Code:      "SUPP01",
		PartyType: domain.Supplier,
		Name:      "Mills & Co",
		IsActive:  true,
	}
	supplierAcct := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "SUPP01",
		AccountType: domain.Liability,
		PartyID:     &supplier.PartyID,
		IsActive:    true,
	}
	req := salesInvoiceRequest(supplier.PartyID, suite.product.ProductID)
	req.VoucherType = domain.PurchaseInvoice

	suite.mockPartyRepo.On("FindPartyByID", ctx, supplier.PartyID).Return(&supplier, nil).Once()
	suite.mockAccountRepo.On("FindAccountByPartyID", ctx, supplier.PartyID).Return(&supplierAcct, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodePurchases, domain.CodeTaxReceivable, domain.CodeDiscountReceived}).
		Return(suite.systemAccountsFor(domain.CodePurchases, domain.CodeTaxReceivable, domain.CodeDiscountReceived), nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(prepared.Entries, 3)
	purchases := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodePurchases].AccountID)
	suite.Equal("1000", purchases.Debit.String())
	tax := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodeTaxReceivable].AccountID)
	suite.Equal("180", tax.Debit.String())
	creditor := suite.findEntry(prepared.Entries, supplierAcct.AccountID)
	suite.Equal("1180", creditor.Credit.String())

	suite.Require().Len(prepared.Movements, 1)
	suite.Equal(domain.StockIn, prepared.Movements[0].Direction)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_ValidationFailures() {
	ctx := context.Background()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	partyID := suite.customer.PartyID
	cashID := suite.cashAcct.AccountID
	line := dto.VoucherItemRequest{Amount: decimal.NewFromInt(100)}

	tests := []struct {
		name string
		req  dto.CreateVoucherRequest
	}{
		{
			name: "unknown voucher type",
			req:  dto.CreateVoucherRequest{VoucherType: "credit_note", VoucherDate: date, Items: []dto.VoucherItemRequest{line}},
		},
		{
			name: "no items",
			req:  dto.CreateVoucherRequest{VoucherType: domain.JournalVoucher, VoucherDate: date},
		},
		{
			name: "missing date",
			req:  dto.CreateVoucherRequest{VoucherType: domain.JournalVoucher, Items: []dto.VoucherItemRequest{line}},
		},
		{
			name: "paid-from on a non-settlement type",
			req:  dto.CreateVoucherRequest{VoucherType: domain.SalesInvoice, VoucherDate: date, PartyID: &partyID, PaidFromAccountID: &cashID, Items: []dto.VoucherItemRequest{line}},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.PrepareVoucher(ctx, tt.req, suite.userID)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_TradeRequiresParty() {
	ctx := context.Background()
	req := salesInvoiceRequest(suite.customer.PartyID, suite.product.ProductID)
	req.PartyID = nil

	_, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartyRequired)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindPartyByID", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_InactivePartyRejected() {
	ctx := context.Background()
	inactive := suite.customer
	inactive.IsActive = false
	req := salesInvoiceRequest(inactive.PartyID, suite.product.ProductID)

	suite.mockPartyRepo.On("FindPartyByID", ctx, inactive.PartyID).Return(&inactive, nil).Once()

	_, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByPartyID", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_Journal() {
	ctx := context.Background()
	rentAcct := uuid.NewString()
	found := map[string]domain.Account{
		rentAcct:                 {AccountID: rentAcct, Code: "RENT", IsActive: true},
		suite.cashAcct.AccountID: suite.cashAcct,
	}
	req := dto.CreateVoucherRequest{
		VoucherType: domain.JournalVoucher,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.VoucherItemRequest{
			{AccountID: &rentAcct, Description: "April rent", Debit: decimal.NewFromInt(250)},
			{AccountID: &suite.cashAcct.AccountID, Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{rentAcct, suite.cashAcct.AccountID}).Return(found, nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(prepared.Entries, 2)
	suite.True(prepared.Entries[0].IsManual)
	suite.True(prepared.Entries[1].IsManual)
	suite.Equal("April rent", prepared.Entries[0].Narration)
	suite.Equal("250", prepared.Voucher.Subtotal.String())
	suite.Equal("0", prepared.Voucher.TaxTotal.String())
	suite.Empty(prepared.Movements)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_JournalUnbalanced() {
	ctx := context.Background()
	a, b := uuid.NewString(), uuid.NewString()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.JournalVoucher,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.VoucherItemRequest{
			{AccountID: &a, Debit: decimal.NewFromInt(250)},
			{AccountID: &b, Credit: decimal.NewFromInt(200)},
		},
	}

	_, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_JournalLineMustPickASide() {
	ctx := context.Background()
	a := uuid.NewString()

	both := dto.CreateVoucherRequest{
		VoucherType: domain.JournalVoucher,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.VoucherItemRequest{
			{AccountID: &a, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
		},
	}
	_, err := suite.service.PrepareVoucher(ctx, both, suite.userID)
	suite.ErrorIs(err, services.ErrEntryNotExclusive)

	neither := dto.CreateVoucherRequest{
		VoucherType: domain.JournalVoucher,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items:       []dto.VoucherItemRequest{{AccountID: &a}},
	}
	_, err = suite.service.PrepareVoucher(ctx, neither, suite.userID)
	suite.ErrorIs(err, services.ErrEntryNotExclusive)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_OpeningBalanceMirrorsAgainstAdjustment() {
	ctx := context.Background()
	loanAcct := uuid.NewString()
	found := map[string]domain.Account{
		suite.cashAcct.AccountID: suite.cashAcct,
		loanAcct:                 {AccountID: loanAcct, Code: "LOAN", IsActive: true},
	}
	req := dto.CreateVoucherRequest{
		VoucherType: domain.OpeningBalance,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.VoucherItemRequest{
			{AccountID: &suite.cashAcct.AccountID, Debit: decimal.NewFromInt(500)},
			{AccountID: &loanAcct, Credit: decimal.NewFromInt(200)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAcct.AccountID, loanAcct}).Return(found, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodeOpeningBalanceAdj}).
		Return(suite.systemAccountsFor(domain.CodeOpeningBalanceAdj), nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Each line is mirrored against the adjustment account, so the set
	// balances no matter what the lines sum to.
	suite.Require().Len(prepared.Entries, 4)

	adjID := suite.systemAccts[domain.CodeOpeningBalanceAdj].AccountID
	var adjDebit, adjCredit decimal.Decimal
	for _, e := range prepared.Entries {
		// Opening lines go in as-is: neither the user lines nor the
		// mirrors are manual.
		suite.False(e.IsManual)
		if e.AccountID == adjID {
			adjDebit = adjDebit.Add(e.Debit)
			adjCredit = adjCredit.Add(e.Credit)
		}
	}
	suite.Equal("200", adjDebit.String())
	suite.Equal("500", adjCredit.String())
	suite.Equal("700", prepared.Voucher.Subtotal.String())
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_Payment() {
	ctx := context.Background()
	supplier := domain.Party{PartyID: uuid.NewString(), Code: "SUPP01", PartyType: domain.Supplier, Name: "Mills & Co", IsActive: true}
	supplierAcct := domain.Account{AccountID: uuid.NewString(), Code: "SUPP01", AccountType: domain.Liability, PartyID: &supplier.PartyID, IsActive: true}
	req := dto.CreateVoucherRequest{
		VoucherType:       domain.Payment,
		VoucherDate:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		PartyID:           &supplier.PartyID,
		PaidFromAccountID: &suite.cashAcct.AccountID,
		Items:             []dto.VoucherItemRequest{{Amount: decimal.NewFromInt(500)}},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAcct.AccountID).Return(&suite.cashAcct, nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, supplier.PartyID).Return(&supplier, nil).Once()
	suite.mockAccountRepo.On("FindAccountByPartyID", ctx, supplier.PartyID).Return(&supplierAcct, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodeTaxReceivable}).
		Return(suite.systemAccountsFor(domain.CodeTaxReceivable), nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Money leaves cash; the supplier's balance is cleared.
	suite.Require().Len(prepared.Entries, 2)
	payee := suite.findEntry(prepared.Entries, supplierAcct.AccountID)
	suite.Equal("500", payee.Debit.String())
	cash := suite.findEntry(prepared.Entries, suite.cashAcct.AccountID)
	suite.Equal("500", cash.Credit.String())
	suite.Empty(prepared.Movements)
	suite.Equal(domain.PaymentStatus(""), prepared.Voucher.PaymentStatus)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_SettlementRequiresPaidFrom() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.Receipt,
		VoucherDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		PartyID:     &suite.customer.PartyID,
		Items:       []dto.VoucherItemRequest{{Amount: decimal.NewFromInt(500)}},
	}

	_, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaidFromRequired)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_SettlementRejectsDiscount() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType:       domain.Payment,
		VoucherDate:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		PaidFromAccountID: &suite.cashAcct.AccountID,
		DiscountRate:      decimal.NewFromInt(5),
		Items:             []dto.VoucherItemRequest{{Amount: decimal.NewFromInt(500)}},
	}

	_, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPrepareVoucher_OpeningStockIgnoresTax() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.OpeningStock,
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.VoucherItemRequest{
			{
				ProductID:       &suite.product.ProductID,
				InitialQuantity: decimal.NewFromInt(50),
				Rate:            decimal.NewFromInt(20),
				TaxRate:         decimal.NewFromInt(18),
			},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodeInventory, domain.CodeOpeningBalanceAdj}).
		Return(suite.systemAccountsFor(domain.CodeInventory, domain.CodeOpeningBalanceAdj), nil).Once()

	prepared, err := suite.service.PrepareVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("0", prepared.Voucher.TaxTotal.String())
	suite.Equal("1000", prepared.Voucher.TotalAmount.String())

	suite.Require().Len(prepared.Entries, 2)
	inventory := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodeInventory].AccountID)
	suite.Equal("1000", inventory.Debit.String())
	adj := suite.findEntry(prepared.Entries, suite.systemAccts[domain.CodeOpeningBalanceAdj].AccountID)
	suite.Equal("1000", adj.Credit.String())

	suite.Require().Len(prepared.Movements, 1)
	suite.Equal(domain.StockIn, prepared.Movements[0].Direction)
}

// --- CreateVoucher ---

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	req := salesInvoiceRequest(suite.customer.PartyID, suite.product.ProductID)

	suite.expectCustomerLookup(ctx)
	suite.mockProductRepo.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).
		Return(suite.systemAccountsFor(domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed), nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx,
		mock.AnythingOfType("domain.Voucher"),
		mock.AnythingOfType("[]domain.VoucherItem"),
		mock.AnythingOfType("[]domain.JournalEntry"),
		mock.AnythingOfType("[]domain.StockMovement"),
	).Return("SI-0001", nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(voucher)
	suite.Equal("SI-0001", voucher.VoucherNumber)
	suite.NotEmpty(voucher.VoucherID)
	suite.Len(voucher.Items, 1)
	suite.Equal(suite.userID, voucher.CreatedBy)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SaveError() {
	ctx := context.Background()
	req := salesInvoiceRequest(suite.customer.PartyID, suite.product.ProductID)

	suite.expectCustomerLookup(ctx)
	suite.mockProductRepo.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).
		Return(suite.systemAccountsFor(domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed), nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- UpdateVoucher ---

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_RegeneratesAndKeepsNumber() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	existing := domain.Voucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "SI-0042",
		VoucherType:   domain.SalesInvoice,
		VoucherDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus: domain.Unpaid,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			CreatedBy: creatorID,
		},
	}
	req := dto.UpdateVoucherRequest{
		VoucherDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		PartyID:     &suite.customer.PartyID,
		Items: []dto.VoucherItemRequest{
			{
				ProductID:       &suite.product.ProductID,
				InitialQuantity: decimal.NewFromInt(10),
				Rate:            decimal.NewFromInt(100),
				TaxRate:         decimal.NewFromInt(18),
			},
		},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, existing.VoucherID).Return(&existing, nil).Once()
	suite.expectCustomerLookup(ctx)
	suite.mockProductRepo.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).
		Return(suite.systemAccountsFor(domain.CodeSales, domain.CodeTaxPayable, domain.CodeDiscountAllowed), nil).Once()

	suite.mockVoucherRepo.On("Begin", ctx).Return(nil, nil).Once()
	// 1180 already allocated against the new grand total of 1180.
	suite.mockAllocationRepo.On("SumAllocationsForInvoiceInTx", ctx, mock.Anything, existing.VoucherID).
		Return(decimal.NewFromInt(1180), nil).Once()
	suite.mockVoucherRepo.On("DeleteJournalEntriesInTx", ctx, mock.Anything, existing.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("DeleteStockMovementsInTx", ctx, mock.Anything, existing.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("DeleteVoucherItemsInTx", ctx, mock.Anything, existing.VoucherID).Return(nil).Once()

	var savedHeader domain.Voucher
	suite.mockVoucherRepo.On("UpdateVoucherHeaderInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Voucher")).
		Run(func(args mock.Arguments) { savedHeader = args.Get(2).(domain.Voucher) }).
		Return(nil).Once()
	suite.mockVoucherRepo.On("InsertVoucherItemsInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("InsertJournalEntriesInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("InsertStockMovementsInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	updated, err := suite.service.UpdateVoucher(ctx, existing.VoucherID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.VoucherID, savedHeader.VoucherID)
	suite.Equal("SI-0042", savedHeader.VoucherNumber)
	suite.Equal(domain.Paid, savedHeader.PaymentStatus)
	suite.Equal(creatorID, savedHeader.CreatedBy)
	suite.Equal(suite.userID, savedHeader.LastUpdatedBy)
	suite.Equal("SI-0042", updated.VoucherNumber)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_DeletedVoucher() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	existing := domain.Voucher{
		VoucherID:   uuid.NewString(),
		VoucherType: domain.JournalVoucher,
		DeletedAt:   &deletedAt,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, existing.VoucherID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateVoucher(ctx, existing.VoucherID, dto.UpdateVoucherRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteVoucher ---

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_SettlementReleasesInvoices() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	payment := domain.Voucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "PAY-0003",
		VoucherType:   domain.Payment,
	}
	invoice := domain.Voucher{
		VoucherID:     invoiceID,
		VoucherNumber: "PI-0009",
		VoucherType:   domain.PurchaseInvoice,
		TotalAmount:   decimal.NewFromInt(1000),
		TaxTotal:      decimal.NewFromInt(180),
		PaymentStatus: domain.Paid,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, payment.VoucherID).Return(&payment, nil).Once()
	suite.mockVoucherRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAllocationRepo.On("DeleteAllocationsByPaymentInTx", ctx, mock.Anything, payment.VoucherID).
		Return([]string{invoiceID}, nil).Once()
	suite.mockVoucherRepo.On("SoftDeleteVoucherInTx", ctx, mock.Anything, payment.VoucherID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, invoiceID).Return(&invoice, nil).Once()
	suite.mockAllocationRepo.On("SumAllocationsForInvoiceInTx", ctx, mock.Anything, invoiceID).
		Return(decimal.Zero, nil).Once()
	suite.mockVoucherRepo.On("UpdatePaymentStatusInTx", ctx, mock.Anything, invoiceID, domain.Unpaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockVoucherRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.DeleteVoucher(ctx, payment.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
	// The payment's own entries stay behind the deleted header.
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "DeleteJournalEntriesInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_InvoiceCascade() {
	ctx := context.Background()
	invoice := domain.Voucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "SI-0001",
		VoucherType:   domain.SalesInvoice,
		TotalAmount:   decimal.NewFromInt(1000),
		TaxTotal:      decimal.NewFromInt(180),
	}
	quickPayment := domain.Voucher{
		VoucherID:            uuid.NewString(),
		VoucherNumber:        "RCT-0002",
		VoucherType:          domain.Receipt,
		CreatedFromInvoiceID: &invoice.VoucherID,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, invoice.VoucherID).Return(&invoice, nil).Once()
	suite.mockVoucherRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockVoucherRepo.On("FindSettlementsForInvoice", ctx, invoice.VoucherID).
		Return([]domain.Voucher{quickPayment}, nil).Once()

	// The quick payment goes first: allocations, entries, header.
	suite.mockAllocationRepo.On("DeleteAllocationsByPaymentInTx", ctx, mock.Anything, quickPayment.VoucherID).
		Return([]string{invoice.VoucherID}, nil).Once()
	suite.mockVoucherRepo.On("DeleteJournalEntriesInTx", ctx, mock.Anything, quickPayment.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("SoftDeleteVoucherInTx", ctx, mock.Anything, quickPayment.VoucherID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	// Then the invoice itself.
	suite.mockAllocationRepo.On("DeleteAllocationsByInvoiceInTx", ctx, mock.Anything, invoice.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("DeleteJournalEntriesInTx", ctx, mock.Anything, invoice.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("DeleteStockMovementsInTx", ctx, mock.Anything, invoice.VoucherID).Return(nil).Once()
	suite.mockVoucherRepo.On("SoftDeleteVoucherInTx", ctx, mock.Anything, invoice.VoucherID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockVoucherRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.DeleteVoucher(ctx, invoice.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
	// The deleted invoice's own status is not recomputed.
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_AlreadyDeleted() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:   uuid.NewString(),
		VoucherType: domain.JournalVoucher,
		DeletedAt:   &deletedAt,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(&voucher, nil).Once()

	err := suite.service.DeleteVoucher(ctx, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- ListVouchers ---

func (suite *VoucherServiceTestSuite) TestListVouchers_InvalidDateFilter() {
	ctx := context.Background()
	badDate := "01-04-2025"
	params := dto.ListVouchersParams{FromDate: &badDate, Limit: 20}

	_, err := suite.service.ListVouchers(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "ListVouchers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestListVouchers_PassesFilter() {
	ctx := context.Background()
	voucherType := "sales_invoice"
	params := dto.ListVouchersParams{VoucherType: &voucherType, Limit: 20}
	vouchers := []domain.Voucher{{VoucherID: uuid.NewString(), VoucherNumber: "SI-0001", VoucherType: domain.SalesInvoice}}

	suite.mockVoucherRepo.On("ListVouchers", ctx, mock.MatchedBy(func(f portsrepo.ListVouchersFilter) bool {
		return f.VoucherType != nil && *f.VoucherType == domain.SalesInvoice
	}), 20, (*string)(nil)).Return(vouchers, nil, nil).Once()

	resp, err := suite.service.ListVouchers(ctx, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Vouchers, 1)
	suite.Equal("SI-0001", resp.Vouchers[0].VoucherNumber)
	suite.Nil(resp.NextToken)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
