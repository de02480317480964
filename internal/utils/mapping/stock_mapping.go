package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:   d.MovementID,
		VoucherID:    d.VoucherID,
		ProductID:    d.ProductID,
		Direction:    string(d.Direction),
		Quantity:     d.Quantity,
		Rate:         d.Rate,
		Amount:       d.Amount,
		MovementDate: d.MovementDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:   m.MovementID,
		VoucherID:    m.VoucherID,
		ProductID:    m.ProductID,
		Direction:    domain.StockDirection(m.Direction),
		Quantity:     m.Quantity,
		Rate:         m.Rate,
		Amount:       m.Amount,
		MovementDate: m.MovementDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts a slice of model StockMovements to a slice of domain StockMovements
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}
