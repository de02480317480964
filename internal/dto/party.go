package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a new party. The
// paired ledger account is created from the same request.
type CreatePartyRequest struct {
	Code               string             `json:"code" binding:"required"`
	PartyType          domain.PartyType   `json:"partyType" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name               string             `json:"name" binding:"required"`
	Phone              string             `json:"phone"`
	Email              string             `json:"email" binding:"omitempty,email"`
	Address            string             `json:"address"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide `json:"openingBalanceType" binding:"omitempty,oneof=DR CR"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
type UpdatePartyRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID       string           `json:"partyID"`
	Code          string           `json:"code"`
	PartyType     domain.PartyType `json:"partyType"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email"`
	Address       string           `json:"address"`
	AccountID     string           `json:"accountID,omitempty"` // Paired ledger account
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToPartyResponse converts a domain.Party (and its paired account, may be nil)
// to a PartyResponse DTO
func ToPartyResponse(p *domain.Party, account *domain.Account) PartyResponse {
	resp := PartyResponse{
		PartyID:       p.PartyID,
		Code:          p.Code,
		PartyType:     p.PartyType,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
	if account != nil {
		resp.AccountID = account.AccountID
	}
	return resp
}

// ToListPartyResponse converts a slice of domain.Party to a slice of PartyResponse DTOs
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p, nil)
	}
	return res
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	PartyType       *string `form:"partyType" binding:"omitempty,oneof=CUSTOMER SUPPLIER"`
	Limit           int     `form:"limit,default=50"`
	Offset          int     `form:"offset,default=0"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListPartiesResponse wraps the list of parties.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}
