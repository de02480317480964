package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/munimji/munim_backend/internal/models"
	"github.com/munimji/munim_backend/internal/utils/mapping"
	"github.com/munimji/munim_backend/internal/utils/pagination"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool DB) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `voucher_id, voucher_number, voucher_type, voucher_date, party_id, subtotal, discount_rate, discount_amount, total_amount, tax_total, paid_from_account_id, narration, status, payment_status, created_from_invoice_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanVoucherRow(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.VoucherType,
		&m.VoucherDate,
		&m.PartyID,
		&m.Subtotal,
		&m.DiscountRate,
		&m.DiscountAmount,
		&m.TotalAmount,
		&m.TaxTotal,
		&m.PaidFromAccountID,
		&m.Narration,
		&m.Status,
		&m.PaymentStatus,
		&m.CreatedFromInvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// nextVoucherNumber consumes the sequence row for the voucher type and formats
// the number as PREFIX-NNNN. The UPDATE..RETURNING keeps concurrent posters
// from drawing the same number.
func nextVoucherNumber(ctx context.Context, tx pgx.Tx, voucherType domain.VoucherType) (string, error) {
	query := `
		UPDATE voucher_sequences
		SET next_number = next_number + 1
		WHERE voucher_type = $1
		RETURNING prefix, next_number - 1;
	`
	var prefix string
	var seq int64
	err := tx.QueryRow(ctx, query, string(voucherType)).Scan(&prefix, &seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The sequences are seeded by migration; a missing row means the
			// schema is broken, not that the caller did anything wrong.
			return "", apperrors.NewAppError(500, "voucher sequence row missing for type "+string(voucherType), apperrors.ErrInternal)
		}
		return "", apperrors.NewAppError(500, "failed to advance voucher sequence for type "+string(voucherType), err)
	}
	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

// SaveVoucher atomically assigns the next voucher number and persists the
// header, items, journal entries and stock movements.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.CreateVoucherInTx(ctx, tx, voucher, items, entries, movements)
	if err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

// CreateVoucherInTx performs the voucher insert inside an existing transaction
// so callers can compose it with allocations or other voucher writes.
func (r *PgxVoucherRepository) CreateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, items []domain.VoucherItem, entries []domain.JournalEntry, movements []domain.StockMovement) (string, error) {
	number, err := nextVoucherNumber(ctx, tx, voucher.VoucherType)
	if err != nil {
		return "", err
	}
	voucher.VoucherNumber = number

	modelVoucher := mapping.ToModelVoucher(voucher)
	headerQuery := `
		INSERT INTO vouchers (
			voucher_id, voucher_number, voucher_type, voucher_date, party_id,
			subtotal, discount_rate, discount_amount, total_amount, tax_total,
			paid_from_account_id, narration, status, payment_status, created_from_invoice_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelVoucher.VoucherID,
		modelVoucher.VoucherNumber,
		modelVoucher.VoucherType,
		modelVoucher.VoucherDate,
		modelVoucher.PartyID,
		modelVoucher.Subtotal,
		modelVoucher.DiscountRate,
		modelVoucher.DiscountAmount,
		modelVoucher.TotalAmount,
		modelVoucher.TaxTotal,
		modelVoucher.PaidFromAccountID,
		modelVoucher.Narration,
		modelVoucher.Status,
		modelVoucher.PaymentStatus,
		modelVoucher.CreatedFromInvoiceID,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	if err := r.InsertVoucherItemsInTx(ctx, tx, items); err != nil {
		return "", err
	}
	if err := r.InsertJournalEntriesInTx(ctx, tx, entries); err != nil {
		return "", err
	}
	if err := r.InsertStockMovementsInTx(ctx, tx, movements); err != nil {
		return "", err
	}

	return number, nil
}

// InsertVoucherItemsInTx inserts line items for a voucher.
func (r *PgxVoucherRepository) InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO voucher_items (
			item_id, voucher_id, product_id, account_id, description,
			initial_quantity, count, deduction_per_unit, final_quantity, rate, amount,
			discount_percent, discount_amount, taxable_amount, tax_rate, tax_amount,
			debit, credit, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelVoucherItem(item)
		batch.Queue(query,
			m.ItemID,
			m.VoucherID,
			m.ProductID,
			m.AccountID,
			m.Description,
			m.InitialQuantity,
			m.Count,
			m.DeductionPerUnit,
			m.FinalQuantity,
			m.Rate,
			m.Amount,
			m.DiscountPercent,
			m.DiscountAmount,
			m.TaxableAmount,
			m.TaxRate,
			m.TaxAmount,
			m.Debit,
			m.Credit,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute voucher item batch", err)
	}
	return nil
}

// InsertJournalEntriesInTx inserts journal entries for a voucher.
func (r *PgxVoucherRepository) InsertJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO journal_entries (entry_id, voucher_id, account_id, entry_date, debit, credit, is_manual, narration, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.VoucherID,
			m.AccountID,
			m.EntryDate,
			m.Debit,
			m.Credit,
			m.IsManual,
			m.Narration,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal entry batch", err)
	}
	return nil
}

// InsertStockMovementsInTx inserts stock movements for a voucher.
func (r *PgxVoucherRepository) InsertStockMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	query := `
		INSERT INTO stock_movements (movement_id, voucher_id, product_id, direction, quantity, rate, amount, movement_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	batch := &pgx.Batch{}
	for _, movement := range movements {
		m := mapping.ToModelStockMovement(movement)
		batch.Queue(query,
			m.MovementID,
			m.VoucherID,
			m.ProductID,
			m.Direction,
			m.Quantity,
			m.Rate,
			m.Amount,
			m.MovementDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute stock movement batch", err)
	}
	return nil
}

// FindVoucherByID retrieves a voucher header by ID, including soft-deleted
// vouchers so delete flows can distinguish gone from never-existed.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`

	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher by ID "+voucherID, err)
	}

	domainVoucher := mapping.ToDomainVoucher(m)
	return &domainVoucher, nil
}

// FindVouchersByIDs retrieves multiple non-deleted voucher headers keyed by id.
func (r *PgxVoucherRepository) FindVouchersByIDs(ctx context.Context, voucherIDs []string) (map[string]domain.Voucher, error) {
	if len(voucherIDs) == 0 {
		return map[string]domain.Voucher{}, nil
	}

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = ANY($1) AND deleted_at IS NULL;`

	rows, err := r.Pool.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vouchers by IDs", err)
	}
	defer rows.Close()

	vouchersMap := make(map[string]domain.Voucher)
	for rows.Next() {
		m, err := scanVoucherRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher row during batch fetch", err)
		}
		vouchersMap[m.VoucherID] = mapping.ToDomainVoucher(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows during batch fetch", err)
	}

	return vouchersMap, nil
}

// FindVoucherItems retrieves the line items of a voucher.
func (r *PgxVoucherRepository) FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error) {
	query := `
		SELECT item_id, voucher_id, product_id, account_id, description,
		       initial_quantity, count, deduction_per_unit, final_quantity, rate, amount,
		       discount_percent, discount_amount, taxable_amount, tax_rate, tax_amount,
		       debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_items
		WHERE voucher_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for voucher "+voucherID, err)
	}
	defer rows.Close()

	items := []models.VoucherItem{}
	for rows.Next() {
		var m models.VoucherItem
		err := rows.Scan(
			&m.ItemID,
			&m.VoucherID,
			&m.ProductID,
			&m.AccountID,
			&m.Description,
			&m.InitialQuantity,
			&m.Count,
			&m.DeductionPerUnit,
			&m.FinalQuantity,
			&m.Rate,
			&m.Amount,
			&m.DiscountPercent,
			&m.DiscountAmount,
			&m.TaxableAmount,
			&m.TaxRate,
			&m.TaxAmount,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for voucher "+voucherID, err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainVoucherItemSlice(items), nil
}

// FindJournalEntriesByVoucherID retrieves the journal entries of a voucher.
func (r *PgxVoucherRepository) FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, voucher_id, account_id, entry_date, debit, credit, is_manual, narration, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE voucher_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for voucher "+voucherID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.VoucherID,
			&m.AccountID,
			&m.EntryDate,
			&m.Debit,
			&m.Credit,
			&m.IsManual,
			&m.Narration,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row for voucher "+voucherID, err)
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// FindStockMovementsByVoucherID retrieves the stock movements of a voucher.
func (r *PgxVoucherRepository) FindStockMovementsByVoucherID(ctx context.Context, voucherID string) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, voucher_id, product_id, direction, quantity, rate, amount, movement_date, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE voucher_id = $1
		ORDER BY created_at, movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock movements for voucher "+voucherID, err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.MovementID,
			&m.VoucherID,
			&m.ProductID,
			&m.Direction,
			&m.Quantity,
			&m.Rate,
			&m.Amount,
			&m.MovementDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock movement row for voucher "+voucherID, err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock movement rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainStockMovementSlice(movements), nil
}

// ListVouchers retrieves a paginated list of non-deleted vouchers using
// token-based pagination, newest first.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + voucherColumns + ` FROM vouchers`
	filterClause := `WHERE deleted_at IS NULL`
	args := []interface{}{}

	if filter.VoucherType != nil {
		args = append(args, string(*filter.VoucherType))
		filterClause += ` AND voucher_type = $` + strconv.Itoa(len(args))
	}
	if filter.PartyID != nil {
		args = append(args, *filter.PartyID)
		filterClause += ` AND party_id = $` + strconv.Itoa(len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		filterClause += ` AND voucher_date >= $` + strconv.Itoa(len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		filterClause += ` AND voucher_date <= $` + strconv.Itoa(len(args))
	}

	// Stable ordering: voucher_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY voucher_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (voucher_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers", err)
	}
	defer rows.Close()

	modelVouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanVoucherRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher row", scanErr)
		}
		modelVouchers = append(modelVouchers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}

	var nextTokenVal *string
	results := modelVouchers
	if len(modelVouchers) > limit {
		lastVoucher := modelVouchers[limit-1]
		newToken := pagination.EncodeToken(lastVoucher.VoucherDate, lastVoucher.CreatedAt)
		nextTokenVal = &newToken
		results = modelVouchers[:limit]
	}

	return mapping.ToDomainVoucherSlice(results), nextTokenVal, nil
}

// FindSettlementsForInvoice retrieves the non-deleted payment/receipt vouchers
// that were created specifically to settle the given invoice.
func (r *PgxVoucherRepository) FindSettlementsForInvoice(ctx context.Context, invoiceVoucherID string) ([]domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE created_from_invoice_id = $1 AND deleted_at IS NULL;`

	rows, err := r.Pool.Query(ctx, query, invoiceVoucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settlements for invoice "+invoiceVoucherID, err)
	}
	defer rows.Close()

	vouchers := []models.Voucher{}
	for rows.Next() {
		m, err := scanVoucherRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan settlement row for invoice "+invoiceVoucherID, err)
		}
		vouchers = append(vouchers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating settlement rows for invoice "+invoiceVoucherID, err)
	}

	return mapping.ToDomainVoucherSlice(vouchers), nil
}

// UpdateVoucherHeaderInTx rewrites the mutable header fields of a voucher. The
// voucher number, type and audit creation fields stay untouched.
func (r *PgxVoucherRepository) UpdateVoucherHeaderInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)

	query := `
		UPDATE vouchers
		SET voucher_date = $2, party_id = $3, subtotal = $4, discount_rate = $5, discount_amount = $6,
		    total_amount = $7, tax_total = $8, paid_from_account_id = $9, narration = $10,
		    payment_status = $11, last_updated_at = $12, last_updated_by = $13
		WHERE voucher_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.VoucherDate,
		m.PartyID,
		m.Subtotal,
		m.DiscountRate,
		m.DiscountAmount,
		m.TotalAmount,
		m.TaxTotal,
		m.PaidFromAccountID,
		m.Narration,
		m.PaymentStatus,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher header "+m.VoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + m.VoucherID + " not found for update")
	}
	return nil
}

// DeleteVoucherItemsInTx removes all line items of a voucher.
func (r *PgxVoucherRepository) DeleteVoucherItemsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM voucher_items WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for voucher "+voucherID, err)
	}
	return nil
}

// DeleteJournalEntriesInTx removes all journal entries of a voucher.
func (r *PgxVoucherRepository) DeleteJournalEntriesInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entries for voucher "+voucherID, err)
	}
	return nil
}

// DeleteStockMovementsInTx removes all stock movements of a voucher.
func (r *PgxVoucherRepository) DeleteStockMovementsInTx(ctx context.Context, tx pgx.Tx, voucherID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM stock_movements WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to delete stock movements for voucher "+voucherID, err)
	}
	return nil
}

// SoftDeleteVoucher marks a voucher header as deleted.
func (r *PgxVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SoftDeleteVoucherInTx(ctx, tx, voucherID, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteVoucherInTx marks a voucher header as deleted within an existing
// transaction.
func (r *PgxVoucherRepository) SoftDeleteVoucherInTx(ctx context.Context, tx pgx.Tx, voucherID string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE voucher_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, voucherID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + voucherID + " not found for delete")
	}
	return nil
}

// UpdatePaymentStatusInTx sets the payment status of an invoice voucher.
func (r *PgxVoucherRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, voucherID string, status domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET payment_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, voucherID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment status for voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + voucherID + " not found for payment status update")
	}
	return nil
}
