package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an inventory item that voucher lines and stock movements
// can reference.
type Product struct {
	ProductID    string          `json:"productID"` // Primary Key (UUID)
	Code         string          `json:"code"`      // Unique human-meaningful code
	Name         string          `json:"name"`
	Unit         string          `json:"unit"` // e.g. "bag", "kg", "pcs"
	PurchaseRate decimal.Decimal `json:"purchaseRate"`
	SaleRate     decimal.Decimal `json:"saleRate"`
	TaxRate      decimal.Decimal `json:"taxRate"` // Default percent applied to new lines
	OpeningStock decimal.Decimal `json:"openingStock"`
	IsActive     bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
