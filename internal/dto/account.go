package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code               string             `json:"code" binding:"required"`
	Name               string             `json:"name" binding:"required"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AccountGroup       string             `json:"accountGroup"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide `json:"openingBalanceType" binding:"omitempty,oneof=DR CR"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name               *string          `json:"name"`
	AccountGroup       *string          `json:"accountGroup"`
	OpeningBalance     *decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType *string          `json:"openingBalanceType" binding:"omitempty,oneof=DR CR"`
	IsActive           *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	AccountType        domain.AccountType `json:"accountType"`
	AccountGroup       string             `json:"accountGroup"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide `json:"openingBalanceType"`
	PartyID            *string            `json:"partyID,omitempty"`
	IsSystem           bool               `json:"isSystem"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Code:               acc.Code,
		Name:               acc.Name,
		AccountType:        acc.AccountType,
		AccountGroup:       acc.AccountGroup,
		OpeningBalance:     acc.OpeningBalance,
		OpeningBalanceType: acc.OpeningBalanceType,
		PartyID:            acc.PartyID,
		IsSystem:           acc.IsSystem,
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Code            *string `form:"code"`
	Limit           int     `form:"limit,default=50"`
	Offset          int     `form:"offset,default=0"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
