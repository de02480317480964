package services

import (
	"context"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/dto"
)

// PartyReaderSvc defines read operations for party data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a party together with its paired ledger account.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, *domain.Account, error)

	// ListParties retrieves parties ordered by name, optionally filtered by type.
	ListParties(ctx context.Context, partyType *domain.PartyType, includeInactive bool, limit int, offset int) ([]domain.Party, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new party and its paired ledger account atomically.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, *domain.Account, error)

	// UpdateParty updates a party; a name change propagates to the paired account.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeleteParty soft-deletes a party and deactivates its paired account.
	// Rejected while any non-deleted voucher or ledger entry references it.
	DeleteParty(ctx context.Context, partyID string, userID string) error
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
