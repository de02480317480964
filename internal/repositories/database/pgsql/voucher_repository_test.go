package pgsql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/munimji/munim_backend/internal/utils/pagination"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type VoucherRepositoryTestSuite struct {
	suite.Suite
	mock   pgxmock.PgxPoolIface
	repo   portsrepo.VoucherRepositoryWithTx
	ctx    context.Context
	now    time.Time
	date   time.Time
	userID string
}

func (suite *VoucherRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = newPgxVoucherRepository(mock)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC)
	suite.date = time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
}

func (suite *VoucherRepositoryTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestVoucherRepository(t *testing.T) {
	suite.Run(t, new(VoucherRepositoryTestSuite))
}

var voucherRowColumns = []string{
	"voucher_id", "voucher_number", "voucher_type", "voucher_date", "party_id",
	"subtotal", "discount_rate", "discount_amount", "total_amount", "tax_total",
	"paid_from_account_id", "narration", "status", "payment_status", "created_from_invoice_id",
	"created_at", "created_by", "last_updated_at", "last_updated_by", "deleted_at",
}

// journalFixture builds a balanced two-entry journal voucher the way the
// voucher service hands it over: header plus entries, no items or movements.
func (suite *VoucherRepositoryTestSuite) journalFixture() (domain.Voucher, []domain.JournalEntry) {
	audit := domain.AuditFields{
		CreatedAt:     suite.now,
		CreatedBy:     suite.userID,
		LastUpdatedAt: suite.now,
		LastUpdatedBy: suite.userID,
	}
	voucher := domain.Voucher{
		VoucherID:   uuid.NewString(),
		VoucherType: domain.JournalVoucher,
		VoucherDate: suite.date,
		Subtotal:    decimal.NewFromInt(250),
		TotalAmount: decimal.NewFromInt(250),
		TaxTotal:    decimal.Zero,
		Narration:   "April rent",
		Status:      domain.Posted,
		AuditFields: audit,
	}
	entries := []domain.JournalEntry{
		{
			EntryID:     uuid.NewString(),
			VoucherID:   voucher.VoucherID,
			AccountID:   uuid.NewString(),
			EntryDate:   suite.date,
			Debit:       decimal.NewFromInt(250),
			Credit:      decimal.Zero,
			IsManual:    true,
			Narration:   "April rent",
			AuditFields: audit,
		},
		{
			EntryID:     uuid.NewString(),
			VoucherID:   voucher.VoucherID,
			AccountID:   uuid.NewString(),
			EntryDate:   suite.date,
			Debit:       decimal.Zero,
			Credit:      decimal.NewFromInt(250),
			IsManual:    true,
			Narration:   "April rent",
			AuditFields: audit,
		},
	}
	return voucher, entries
}

func (suite *VoucherRepositoryTestSuite) TestSaveVoucher_AssignsSequentialNumber() {
	voucher, entries := suite.journalFixture()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE voucher_sequences`)).
		WithArgs("journal").
		WillReturnRows(pgxmock.NewRows([]string{"prefix", "next_number"}).AddRow("JNL", int64(41)))
	suite.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vouchers`)).
		WithArgs(voucher.VoucherID, "JNL-0041", "journal", voucher.VoucherDate, (*string)(nil),
			voucher.Subtotal, voucher.DiscountRate, voucher.DiscountAmount, voucher.TotalAmount, voucher.TaxTotal,
			(*string)(nil), "April rent", "posted", (*string)(nil), (*string)(nil),
			suite.now, suite.userID, suite.now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	batch := suite.mock.ExpectBatch()
	for _, entry := range entries {
		batch.ExpectExec(regexp.QuoteMeta(`INSERT INTO journal_entries`)).
			WithArgs(entry.EntryID, entry.VoucherID, entry.AccountID, entry.EntryDate,
				entry.Debit, entry.Credit, true, entry.Narration,
				suite.now, suite.userID, suite.now, suite.userID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	number, err := suite.repo.SaveVoucher(suite.ctx, voucher, nil, entries, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "JNL-0041", number)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *VoucherRepositoryTestSuite) TestSaveVoucher_MissingSequenceRow() {
	voucher, entries := suite.journalFixture()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE voucher_sequences`)).
		WithArgs("journal").
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	number, err := suite.repo.SaveVoucher(suite.ctx, voucher, nil, entries, nil)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInternal)
	assert.Empty(suite.T(), number)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *VoucherRepositoryTestSuite) TestFindVoucherByID_IncludesSoftDeleted() {
	voucherID := uuid.NewString()
	deletedAt := suite.now.Add(48 * time.Hour)
	rows := pgxmock.NewRows(voucherRowColumns).
		AddRow(voucherID, "SI-0009", "sales_invoice", suite.date, stringPtr(uuid.NewString()),
			decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(180),
			nil, "", "posted", stringPtr("unpaid"), nil,
			suite.now, suite.userID, suite.now, suite.userID, &deletedAt)

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = $1;`)).
		WithArgs(voucherID).
		WillReturnRows(rows)

	voucher, err := suite.repo.FindVoucherByID(suite.ctx, voucherID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "SI-0009", voucher.VoucherNumber)
	assert.Equal(suite.T(), domain.SalesInvoice, voucher.VoucherType)
	assert.Equal(suite.T(), domain.Unpaid, voucher.PaymentStatus)
	// The tombstone comes back so delete flows can tell gone from never-existed.
	if assert.NotNil(suite.T(), voucher.DeletedAt) {
		assert.True(suite.T(), voucher.DeletedAt.Equal(deletedAt))
	}
}

func (suite *VoucherRepositoryTestSuite) TestFindVoucherByID_NotFound() {
	voucherID := uuid.NewString()

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = $1;`)).
		WithArgs(voucherID).
		WillReturnError(pgx.ErrNoRows)

	voucher, err := suite.repo.FindVoucherByID(suite.ctx, voucherID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	assert.Nil(suite.T(), voucher)
}

func (suite *VoucherRepositoryTestSuite) listRow(rows *pgxmock.Rows, number string, date, createdAt time.Time) *pgxmock.Rows {
	return rows.AddRow(uuid.NewString(), number, "sales_invoice", date, nil,
		decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.NewFromInt(1000), decimal.Zero,
		nil, "", "posted", stringPtr("unpaid"), nil,
		createdAt, suite.userID, createdAt, suite.userID, nil)
}

func (suite *VoucherRepositoryTestSuite) TestListVouchers_PaginatesWithToken() {
	d1 := suite.date
	d2 := suite.date.AddDate(0, 0, -1)
	d3 := suite.date.AddDate(0, 0, -2)

	// One row more than the page size comes back, so a token is cut from the
	// last row that stays on the page.
	rows := pgxmock.NewRows(voucherRowColumns)
	rows = suite.listRow(rows, "SI-0003", d1, suite.now)
	rows = suite.listRow(rows, "SI-0002", d2, suite.now.Add(-time.Hour))
	rows = suite.listRow(rows, "SI-0001", d3, suite.now.Add(-2*time.Hour))

	vtype := domain.SalesInvoice
	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`FROM vouchers WHERE deleted_at IS NULL AND voucher_type = $1 ORDER BY voucher_date DESC, created_at DESC LIMIT $2;`)).
		WithArgs("sales_invoice", 3).
		WillReturnRows(rows)

	vouchers, nextToken, err := suite.repo.ListVouchers(suite.ctx, portsrepo.ListVouchersFilter{VoucherType: &vtype}, 2, nil)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vouchers, 2)
	assert.Equal(suite.T(), "SI-0003", vouchers[0].VoucherNumber)
	assert.Equal(suite.T(), "SI-0002", vouchers[1].VoucherNumber)

	if assert.NotNil(suite.T(), nextToken) {
		tokenDate, tokenCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		assert.NoError(suite.T(), decodeErr)
		assert.True(suite.T(), tokenDate.Equal(d2))
		assert.True(suite.T(), tokenCreatedAt.Equal(suite.now.Add(-time.Hour)))
	}
}

func (suite *VoucherRepositoryTestSuite) TestListVouchers_ResumesFromToken() {
	token := pagination.EncodeToken(suite.date, suite.now)
	// The decoded pair is what lands in the query arguments.
	wantDate, wantCreatedAt, err := pagination.DecodeToken(token)
	assert.NoError(suite.T(), err)

	rows := pgxmock.NewRows(voucherRowColumns)
	rows = suite.listRow(rows, "SI-0001", suite.date.AddDate(0, 0, -3), suite.now.Add(-72*time.Hour))

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`FROM vouchers WHERE deleted_at IS NULL AND (voucher_date, created_at) < ($1, $2) ORDER BY voucher_date DESC, created_at DESC LIMIT $3;`)).
		WithArgs(wantDate, wantCreatedAt, 3).
		WillReturnRows(rows)

	vouchers, nextToken, err := suite.repo.ListVouchers(suite.ctx, portsrepo.ListVouchersFilter{}, 2, &token)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vouchers, 1)
	assert.Equal(suite.T(), "SI-0001", vouchers[0].VoucherNumber)
	assert.Nil(suite.T(), nextToken)
}

func (suite *VoucherRepositoryTestSuite) TestListVouchers_InvalidToken() {
	badToken := "not-base64!"

	vouchers, nextToken, err := suite.repo.ListVouchers(suite.ctx, portsrepo.ListVouchersFilter{}, 2, &badToken)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), vouchers)
	assert.Nil(suite.T(), nextToken)
}

func (suite *VoucherRepositoryTestSuite) TestSoftDeleteVoucher_Success() {
	voucherID := uuid.NewString()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE vouchers`)).
		WithArgs(voucherID, suite.now, suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.SoftDeleteVoucher(suite.ctx, voucherID, suite.userID, suite.now)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *VoucherRepositoryTestSuite) TestSoftDeleteVoucher_AlreadyDeleted() {
	voucherID := uuid.NewString()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE vouchers`)).
		WithArgs(voucherID, suite.now, suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.SoftDeleteVoucher(suite.ctx, voucherID, suite.userID, suite.now)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}
