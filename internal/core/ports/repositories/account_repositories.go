package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByPartyID retrieves the ledger account paired with a party.
	FindAccountByPartyID(ctx context.Context, partyID string) (*domain.Account, error)

	// ListAccounts retrieves accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Account, error)

	// HasJournalEntries reports whether any journal entry references the account.
	HasJournalEntries(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SoftDeleteAccount marks an account as deleted and inactive.
	SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines account operations that run inside a
// caller-managed transaction.
type AccountTransactionSupport interface {
	// SaveAccountInTx persists a new account within an existing transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccountNameInTx renames the account paired with a party within an
	// existing transaction.
	UpdateAccountNameInTx(ctx context.Context, tx pgx.Tx, partyID string, name string, userID string, now time.Time) error

	// SetAccountActiveByPartyInTx flips the active flag of a party's account
	// within an existing transaction.
	SetAccountActiveByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string, active bool, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
