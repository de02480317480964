package repositories

import (
	"context"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
)

// PartyReader defines read operations for party data
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves parties ordered by name, optionally filtered by type.
	ListParties(ctx context.Context, partyType *domain.PartyType, includeInactive bool, limit int, offset int) ([]domain.Party, error)

	// HasVoucherReferences reports whether any non-deleted voucher or journal
	// entry references the party or its paired account.
	HasVoucherReferences(ctx context.Context, partyID string) (bool, error)
}

// PartyWriter defines write operations for party data. Writes that touch the
// paired ledger account happen atomically inside the repository.
type PartyWriter interface {
	// SaveParty persists a new party together with its paired ledger account.
	SaveParty(ctx context.Context, party domain.Party, account domain.Account) error

	// UpdateParty updates a party and keeps the paired account's name in sync.
	UpdateParty(ctx context.Context, party domain.Party) error

	// SoftDeleteParty marks the party deleted and deactivates its paired account.
	SoftDeleteParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
