package models

import "time"

// Party mirrors the parties table.
type Party struct {
	PartyID   string `db:"party_id"`
	Code      string `db:"code"`
	PartyType string `db:"party_type"` // CUSTOMER or SUPPLIER
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Address   string `db:"address"`
	IsActive  bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
