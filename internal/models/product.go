package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the products table.
type Product struct {
	ProductID    string          `db:"product_id"`
	Code         string          `db:"code"`
	Name         string          `db:"name"`
	Unit         string          `db:"unit"`
	PurchaseRate decimal.Decimal `db:"purchase_rate"`
	SaleRate     decimal.Decimal `db:"sale_rate"`
	TaxRate      decimal.Decimal `db:"tax_rate"`
	OpeningStock decimal.Decimal `db:"opening_stock"`
	IsActive     bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
