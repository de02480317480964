package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		Code:               d.Code,
		Name:               d.Name,
		AccountType:        string(d.AccountType),
		AccountGroup:       d.AccountGroup,
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceType: string(d.OpeningBalanceType),
		PartyID:            d.PartyID,
		IsSystem:           d.IsSystem,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		DeletedAt:          d.DeletedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		Code:               m.Code,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		AccountGroup:       m.AccountGroup,
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceType: domain.BalanceSide(m.OpeningBalanceType),
		PartyID:            m.PartyID,
		IsSystem:           m.IsSystem,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		DeletedAt:          m.DeletedAt,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
