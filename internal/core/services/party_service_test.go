package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/core/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo   *MockPartyRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PartySvcFacade
	userID          string
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

// --- CreateParty ---

func (suite *PartyServiceTestSuite) TestCreateParty_CustomerPairsDebtorAccount() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Code:           "CUST01",
		PartyType:      domain.Customer,
		Name:           "Acme Traders",
		Phone:          "9876543210",
		OpeningBalance: decimal.NewFromInt(2500),
	}

	var savedParty domain.Party
	var savedAccount domain.Account
	suite.mockPartyRepo.On("SaveParty", ctx, mock.AnythingOfType("domain.Party"), mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			savedParty = args.Get(1).(domain.Party)
			savedAccount = args.Get(2).(domain.Account)
		}).
		Return(nil).Once()

	party, account, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("CUST01", party.Code)
	suite.Equal(domain.Customer, party.PartyType)

	// The paired account mirrors the party's code and name and lands in the
	// debtors group.
	suite.Equal("CUST01", account.Code)
	suite.Equal("Acme Traders", account.Name)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal("Sundry Debtors", account.AccountGroup)
	suite.Require().NotNil(account.PartyID)
	suite.Equal(party.PartyID, *account.PartyID)
	suite.Equal("2500", account.OpeningBalance.String())
	suite.Equal(domain.DebitSide, account.OpeningBalanceType)

	suite.Equal(savedParty.PartyID, *savedAccount.PartyID)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_SupplierPairsCreditorAccount() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Code:               "SUPP01",
		PartyType:          domain.Supplier,
		Name:               "Mills & Co",
		OpeningBalance:     decimal.NewFromInt(1000),
		OpeningBalanceType: domain.CreditSide,
	}

	suite.mockPartyRepo.On("SaveParty", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, account, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Liability, account.AccountType)
	suite.Equal("Sundry Creditors", account.AccountGroup)
	suite.Equal(domain.CreditSide, account.OpeningBalanceType)
}

func (suite *PartyServiceTestSuite) TestCreateParty_BlankCode() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{Code: "  ", PartyType: domain.Customer, Name: "Nameless"}

	_, _, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestCreateParty_NegativeOpeningBalance() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Code:           "CUST02",
		PartyType:      domain.Customer,
		Name:           "Negative Nellie",
		OpeningBalance: decimal.NewFromInt(-100),
	}

	_, _, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetPartyByID ---

func (suite *PartyServiceTestSuite) TestGetPartyByID_WithPairedAccount() {
	ctx := context.Background()
	party := domain.Party{PartyID: uuid.NewString(), Code: "CUST01", PartyType: domain.Customer, Name: "Acme Traders"}
	account := domain.Account{AccountID: uuid.NewString(), Code: "CUST01", PartyID: &party.PartyID}

	suite.mockPartyRepo.On("FindPartyByID", ctx, party.PartyID).Return(&party, nil).Once()
	suite.mockAccountRepo.On("FindAccountByPartyID", ctx, party.PartyID).Return(&account, nil).Once()

	gotParty, gotAccount, err := suite.service.GetPartyByID(ctx, party.PartyID)

	suite.Require().NoError(err)
	suite.Equal(party.PartyID, gotParty.PartyID)
	suite.Require().NotNil(gotAccount)
	suite.Equal(account.AccountID, gotAccount.AccountID)
}

func (suite *PartyServiceTestSuite) TestGetPartyByID_ToleratesMissingAccount() {
	ctx := context.Background()
	party := domain.Party{PartyID: uuid.NewString(), Code: "CUST01", Name: "Acme Traders"}

	suite.mockPartyRepo.On("FindPartyByID", ctx, party.PartyID).Return(&party, nil).Once()
	suite.mockAccountRepo.On("FindAccountByPartyID", ctx, party.PartyID).Return(nil, apperrors.ErrNotFound).Once()

	gotParty, gotAccount, err := suite.service.GetPartyByID(ctx, party.PartyID)

	suite.Require().NoError(err)
	suite.Equal(party.PartyID, gotParty.PartyID)
	suite.Nil(gotAccount)
}

// --- UpdateParty ---

func (suite *PartyServiceTestSuite) TestUpdateParty_PatchesFields() {
	ctx := context.Background()
	existing := domain.Party{
		PartyID:   uuid.NewString(),
		Code:      "CUST01",
		PartyType: domain.Customer,
		Name:      "Acme Traders",
		Phone:     "111",
		IsActive:  true,
	}
	newName := "Acme Traders Pvt Ltd"
	newPhone := "222"
	req := dto.UpdatePartyRequest{Name: &newName, Phone: &newPhone}

	suite.mockPartyRepo.On("FindPartyByID", ctx, existing.PartyID).Return(&existing, nil).Once()

	var saved domain.Party
	suite.mockPartyRepo.On("UpdateParty", ctx, mock.AnythingOfType("domain.Party")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Party) }).
		Return(nil).Once()

	updated, err := suite.service.UpdateParty(ctx, existing.PartyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Acme Traders Pvt Ltd", updated.Name)
	suite.Equal("222", updated.Phone)
	suite.Equal("CUST01", saved.Code)
	suite.Equal(suite.userID, saved.LastUpdatedBy)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

// --- DeleteParty ---

func (suite *PartyServiceTestSuite) TestDeleteParty_Success() {
	ctx := context.Background()
	party := domain.Party{PartyID: uuid.NewString(), Code: "CUST01", Name: "Acme Traders"}

	suite.mockPartyRepo.On("FindPartyByID", ctx, party.PartyID).Return(&party, nil).Once()
	suite.mockPartyRepo.On("HasVoucherReferences", ctx, party.PartyID).Return(false, nil).Once()
	suite.mockPartyRepo.On("SoftDeleteParty", ctx, party.PartyID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteParty(ctx, party.PartyID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestDeleteParty_ReferencedByVouchers() {
	ctx := context.Background()
	party := domain.Party{PartyID: uuid.NewString(), Code: "CUST01", Name: "Acme Traders"}

	suite.mockPartyRepo.On("FindPartyByID", ctx, party.PartyID).Return(&party, nil).Once()
	suite.mockPartyRepo.On("HasVoucherReferences", ctx, party.PartyID).Return(true, nil).Once()

	err := suite.service.DeleteParty(ctx, party.PartyID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartyHasReferences)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SoftDeleteParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPartyService(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
