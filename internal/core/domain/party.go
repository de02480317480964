package domain

import "time"

// PartyType distinguishes customers from suppliers.
type PartyType string

const (
	Customer PartyType = "CUSTOMER"
	Supplier PartyType = "SUPPLIER"
)

// Party represents a customer or supplier. Every party owns exactly one ledger
// account (accounts.party_id), created with the party and kept in sync.
type Party struct {
	PartyID   string    `json:"partyID"` // Primary Key (UUID)
	Code      string    `json:"code"`    // Unique human-meaningful code
	PartyType PartyType `json:"partyType"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// LedgerAccountType returns the account type for the party's paired account:
// customers are debtors (ASSET), suppliers are creditors (LIABILITY).
func (p Party) LedgerAccountType() AccountType {
	if p.PartyType == Supplier {
		return Liability
	}
	return Asset
}

// LedgerAccountGroup returns the chart group for the party's paired account.
func (p Party) LedgerAccountGroup() string {
	if p.PartyType == Supplier {
		return "Sundry Creditors"
	}
	return "Sundry Debtors"
}
