package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement mirrors the stock_movements table.
type StockMovement struct {
	MovementID   string          `db:"movement_id"`
	VoucherID    string          `db:"voucher_id"`
	ProductID    string          `db:"product_id"`
	Direction    string          `db:"direction"` // IN or OUT
	Quantity     decimal.Decimal `db:"quantity"`
	Rate         decimal.Decimal `db:"rate"`
	Amount       decimal.Decimal `db:"amount"`
	MovementDate time.Time       `db:"movement_date"`
	AuditFields
}
