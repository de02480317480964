package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface. Every
// query joins vouchers and filters deleted_at IS NULL so soft-deleted
// vouchers drop out of all reports.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db DB) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetLedgerEntries retrieves an account's journal entries in the window,
// ordered by (voucher_date, voucher_id). The running balance is left zero for
// the caller to accumulate.
func (r *reportingRepository) GetLedgerEntries(ctx context.Context, accountID string, from *time.Time, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT
			je.entry_id,
			v.voucher_id,
			v.voucher_number,
			v.voucher_type,
			v.voucher_date,
			CASE WHEN je.narration <> '' THEN je.narration ELSE v.narration END,
			je.debit,
			je.credit
		FROM journal_entries je
		JOIN vouchers v ON je.voucher_id = v.voucher_id
		WHERE je.account_id = $1
			AND v.deleted_at IS NULL
			AND v.voucher_date <= $2
	`
	args := []interface{}{accountID, to}
	if from != nil {
		args = append(args, *from)
		query += ` AND v.voucher_date >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY v.voucher_date, v.voucher_id, je.entry_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var result []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var voucherType string
		if err := rows.Scan(
			&entry.EntryID,
			&entry.VoucherID,
			&entry.VoucherNumber,
			&voucherType,
			&entry.EntryDate,
			&entry.Narration,
			&entry.Debit,
			&entry.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger entry row: %w", err)
		}
		entry.VoucherType = domain.VoucherType(voucherType)
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	if result == nil {
		result = []domain.LedgerEntry{}
	}
	return result, nil
}

// GetCarryForward returns the sum of debit minus credit across the account's
// entries dated strictly before the given date.
func (r *reportingRepository) GetCarryForward(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(je.debit - je.credit), 0)
		FROM journal_entries je
		JOIN vouchers v ON je.voucher_id = v.voucher_id
		WHERE je.account_id = $1
			AND v.deleted_at IS NULL
			AND v.voucher_date < $2;
	`
	var carry decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&carry); err != nil {
		return decimal.Zero, fmt.Errorf("error querying carry-forward for account %s: %w", accountID, err)
	}
	return carry, nil
}

// GetTrialBalanceData sums debit and credit per active account over the
// window, ordered by account code. Accounts without activity never join in.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, from *time.Time, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name AS account_name,
			a.account_type,
			SUM(je.debit) AS total_debit,
			SUM(je.credit) AS total_credit
		FROM journal_entries je
		JOIN accounts a ON je.account_id = a.account_id
		JOIN vouchers v ON je.voucher_id = v.voucher_id
		WHERE v.deleted_at IS NULL
			AND a.is_active = TRUE
			AND v.voucher_date <= $1
	`
	args := []interface{}{to}
	if from != nil {
		args = append(args, *from)
		query += ` AND v.voucher_date >= $` + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		// Entries with zero on both sides carry no information.
		if row.Debit.IsZero() && row.Credit.IsZero() {
			continue
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}

// GetProfitAndLossData retrieves profit and loss data for a specific period
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			SUM(je.debit - je.credit) AS net
		FROM journal_entries je
		JOIN accounts a ON je.account_id = a.account_id
		JOIN vouchers v ON je.voucher_id = v.voucher_id
		WHERE v.voucher_date BETWEEN $1 AND $2
			AND v.deleted_at IS NULL
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.name;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	var revenue []domain.AccountAmount
	var expenses []domain.AccountAmount

	for rows.Next() {
		var accountType, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &name, &netAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
			NetAmount: netAmount,
		}

		// Income accounts grow on the credit side, so the DR-positive net is
		// inverted for display. Expense accounts keep the debit sign.
		if accountType == string(domain.Income) {
			accountAmount.NetAmount = netAmount.Neg()
			revenue = append(revenue, accountAmount)
		} else if accountType == string(domain.Expense) {
			expenses = append(expenses, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	// Return empty slices instead of nil
	if revenue == nil {
		revenue = []domain.AccountAmount{}
	}
	if expenses == nil {
		expenses = []domain.AccountAmount{}
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves balance sheet data as of a specific date
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			SUM(je.debit - je.credit) AS net
		FROM journal_entries je
		JOIN accounts a ON je.account_id = a.account_id
		JOIN vouchers v ON je.voucher_id = v.voucher_id
		WHERE v.voucher_date <= $1
			AND v.deleted_at IS NULL
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.name;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	var assets []domain.AccountAmount
	var liabilities []domain.AccountAmount
	var equity []domain.AccountAmount

	for rows.Next() {
		var accountType, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &name, &netAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
			NetAmount: netAmount,
		}

		switch accountType {
		case string(domain.Asset):
			assets = append(assets, accountAmount)
		case string(domain.Liability):
			// Credit-normal balances are inverted for display.
			accountAmount.NetAmount = netAmount.Neg()
			liabilities = append(liabilities, accountAmount)
		case string(domain.Equity):
			accountAmount.NetAmount = netAmount.Neg()
			equity = append(equity, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	// Return empty slices instead of nil
	if assets == nil {
		assets = []domain.AccountAmount{}
	}
	if liabilities == nil {
		liabilities = []domain.AccountAmount{}
	}
	if equity == nil {
		equity = []domain.AccountAmount{}
	}

	return assets, liabilities, equity, nil
}

// GetStockSummaryData aggregates stock movements per product. Movements of
// soft-deleted vouchers are excluded in the joined subquery.
func (r *reportingRepository) GetStockSummaryData(ctx context.Context) ([]domain.StockSummaryRow, error) {
	query := `
		SELECT
			p.product_id,
			p.code,
			p.name,
			p.unit,
			p.opening_stock,
			COALESCE(SUM(CASE WHEN sm.direction = 'IN' THEN sm.quantity ELSE 0 END), 0) AS qty_in,
			COALESCE(SUM(CASE WHEN sm.direction = 'OUT' THEN sm.quantity ELSE 0 END), 0) AS qty_out,
			COALESCE(SUM(CASE WHEN sm.direction = 'IN' THEN sm.amount ELSE 0 END), 0) AS value_in,
			COALESCE(SUM(CASE WHEN sm.direction = 'OUT' THEN sm.amount ELSE 0 END), 0) AS value_out
		FROM products p
		LEFT JOIN (
			SELECT sm.product_id, sm.direction, sm.quantity, sm.amount
			FROM stock_movements sm
			JOIN vouchers v ON sm.voucher_id = v.voucher_id
			WHERE v.deleted_at IS NULL
		) sm ON sm.product_id = p.product_id
		WHERE p.deleted_at IS NULL
		GROUP BY p.product_id, p.code, p.name, p.unit, p.opening_stock
		ORDER BY p.code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying stock summary data: %w", err)
	}
	defer rows.Close()

	var result []domain.StockSummaryRow
	for rows.Next() {
		var row domain.StockSummaryRow
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductCode,
			&row.ProductName,
			&row.Unit,
			&row.OpeningStock,
			&row.QuantityIn,
			&row.QuantityOut,
			&row.ValueIn,
			&row.ValueOut,
		); err != nil {
			return nil, fmt.Errorf("error scanning stock summary row: %w", err)
		}
		row.OnHand = row.OpeningStock.Add(row.QuantityIn).Sub(row.QuantityOut)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock summary rows: %w", err)
	}

	if result == nil {
		result = []domain.StockSummaryRow{}
	}
	return result, nil
}
