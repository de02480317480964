package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Code:         d.Code,
		Name:         d.Name,
		Unit:         d.Unit,
		PurchaseRate: d.PurchaseRate,
		SaleRate:     d.SaleRate,
		TaxRate:      d.TaxRate,
		OpeningStock: d.OpeningStock,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Code:         m.Code,
		Name:         m.Name,
		Unit:         m.Unit,
		PurchaseRate: m.PurchaseRate,
		SaleRate:     m.SaleRate,
		TaxRate:      m.TaxRate,
		OpeningStock: m.OpeningStock,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainProductSlice converts a slice of model Products to a slice of domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
