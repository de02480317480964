package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	"github.com/munimji/munim_backend/internal/models"
	"github.com/munimji/munim_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	pool DB
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool DB) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, code, name, unit, purchase_rate, sale_rate, tax_rate, opening_stock, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanProductRow(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.Name,
		&m.Unit,
		&m.PurchaseRate,
		&m.SaleRate,
		&m.TaxRate,
		&m.OpeningStock,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProd := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (product_id, code, name, unit, purchase_rate, sale_rate, tax_rate, opening_stock, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		modelProd.ProductID,
		modelProd.Code,
		modelProd.Name,
		modelProd.Unit,
		modelProd.PurchaseRate,
		modelProd.SaleRate,
		modelProd.TaxRate,
		modelProd.OpeningStock,
		modelProd.IsActive,
		modelProd.CreatedAt,
		modelProd.CreatedBy,
		modelProd.LastUpdatedAt,
		modelProd.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with code %s already exists", apperrors.ErrDuplicate, modelProd.Code)
		}
		return fmt.Errorf("failed to save product %s: %w", modelProd.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 AND deleted_at IS NULL;`

	modelProd, err := scanProductRow(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	domainProd := mapping.ToDomainProduct(modelProd)
	return &domainProd, nil
}

// FindProductsByIDs retrieves multiple products keyed by id.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) AND deleted_at IS NULL;`

	rows, err := r.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[m.ProductID] = mapping.ToDomainProduct(m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during batch fetch: %w", err)
	}

	return productsMap, nil
}

// ListProducts retrieves products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return products, nil
}

// HasReferences reports whether any stock movement or voucher item of a
// non-deleted voucher references the product.
func (r *PgxProductRepository) HasReferences(ctx context.Context, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM stock_movements sm
			JOIN vouchers v ON sm.voucher_id = v.voucher_id
			WHERE sm.product_id = $1 AND v.deleted_at IS NULL
		) OR EXISTS (
			SELECT 1
			FROM voucher_items vi
			JOIN vouchers v ON vi.voucher_id = v.voucher_id
			WHERE vi.product_id = $1 AND v.deleted_at IS NULL
		);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check references for product %s: %w", productID, err)
	}
	return exists, nil
}

// UpdateProduct updates an existing product in the database.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProd := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, unit = $3, purchase_rate = $4, sale_rate = $5, tax_rate = $6, opening_stock = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		modelProd.ProductID,
		modelProd.Name,
		modelProd.Unit,
		modelProd.PurchaseRate,
		modelProd.SaleRate,
		modelProd.TaxRate,
		modelProd.OpeningStock,
		modelProd.IsActive,
		modelProd.LastUpdatedAt,
		modelProd.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update product %s: %w", modelProd.ProductID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SoftDeleteProduct marks a product as deleted and inactive.
func (r *PgxProductRepository) SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete product %s: %w", productID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
