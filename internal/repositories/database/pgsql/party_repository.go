package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/munimji/munim_backend/internal/models"
	"github.com/munimji/munim_backend/internal/utils/mapping"
)

// PgxPartyRepository persists parties together with their paired ledger
// accounts. Writes that touch the account run in one transaction so the
// party/account pair never drifts apart.
type PgxPartyRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool DB, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

const partyColumns = `party_id, code, party_type, name, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanPartyRow(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.Code,
		&m.PartyType,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveParty persists a new party together with its paired ledger account.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelParty := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (party_id, code, party_type, name, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelParty.PartyID,
		modelParty.Code,
		modelParty.PartyType,
		modelParty.Name,
		modelParty.Phone,
		modelParty.Email,
		modelParty.Address,
		modelParty.IsActive,
		modelParty.CreatedAt,
		modelParty.CreatedBy,
		modelParty.LastUpdatedAt,
		modelParty.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: party with code %s already exists", apperrors.ErrDuplicate, modelParty.Code)
		}
		return fmt.Errorf("failed to save party %s: %w", modelParty.PartyID, err)
	}

	if err := r.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		return fmt.Errorf("failed to save ledger account for party %s: %w", modelParty.PartyID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1 AND deleted_at IS NULL;`

	modelParty, err := scanPartyRow(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}

	domainParty := mapping.ToDomainParty(modelParty)
	return &domainParty, nil
}

// ListParties retrieves parties ordered by name, optionally filtered by type.
func (r *PgxPartyRepository) ListParties(ctx context.Context, partyType *domain.PartyType, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + partyColumns + ` FROM parties WHERE deleted_at IS NULL`
	args := []interface{}{}
	if partyType != nil {
		args = append(args, string(*partyType))
		query += ` AND party_type = $` + strconv.Itoa(len(args))
	}
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	args = append(args, limit)
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanPartyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", rows.Err())
	}

	return parties, nil
}

// HasVoucherReferences reports whether any non-deleted voucher names the party
// or any journal entry hits its paired account.
func (r *PgxPartyRepository) HasVoucherReferences(ctx context.Context, partyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM vouchers v
			WHERE v.party_id = $1 AND v.deleted_at IS NULL
		) OR EXISTS (
			SELECT 1
			FROM journal_entries je
			JOIN accounts a ON je.account_id = a.account_id
			JOIN vouchers v ON je.voucher_id = v.voucher_id
			WHERE a.party_id = $1 AND v.deleted_at IS NULL
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, partyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check voucher references for party %s: %w", partyID, err)
	}
	return exists, nil
}

// UpdateParty updates a party and keeps the paired account's name and active
// flag in sync.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelParty := mapping.ToModelParty(party)
	query := `
		UPDATE parties
		SET name = $2, phone = $3, email = $4, address = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE party_id = $1 AND deleted_at IS NULL;
	`
	// Code and party_type are immutable: changing the type would invalidate
	// the paired account's classification.

	cmdTag, err := tx.Exec(ctx, query,
		modelParty.PartyID,
		modelParty.Name,
		modelParty.Phone,
		modelParty.Email,
		modelParty.Address,
		modelParty.IsActive,
		modelParty.LastUpdatedAt,
		modelParty.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update party %s: %w", modelParty.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.UpdateAccountNameInTx(ctx, tx, party.PartyID, party.Name, party.LastUpdatedBy, party.LastUpdatedAt); err != nil {
		return err
	}
	if err := r.accountRepo.SetAccountActiveByPartyInTx(ctx, tx, party.PartyID, party.IsActive, party.LastUpdatedBy, party.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteParty marks the party deleted and deactivates its paired account.
// The account row survives so historical ledgers keep resolving.
func (r *PgxPartyRepository) SoftDeleteParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE parties
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, partyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.SetAccountActiveByPartyInTx(ctx, tx, partyID, false, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
