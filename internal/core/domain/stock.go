package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockDirection marks a movement as inbound or outbound.
type StockDirection string

const (
	StockIn  StockDirection = "IN"
	StockOut StockDirection = "OUT"
)

// StockMovement is one audit-trail row recording inventory flowing in or out
// with a voucher. Movements are additive; they are not balanced like journal
// entries.
type StockMovement struct {
	MovementID   string          `json:"movementID"` // Primary Key (UUID)
	VoucherID    string          `json:"voucherID"`  // FK -> vouchers.voucher_id
	ProductID    string          `json:"productID"`  // FK -> products.product_id
	Direction    StockDirection  `json:"direction"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
	MovementDate time.Time       `json:"movementDate"`
	AuditFields
}
