package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelPaymentAllocation converts a domain PaymentAllocation to a model PaymentAllocation
func ToModelPaymentAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID:     d.AllocationID,
		PaymentVoucherID: d.PaymentVoucherID,
		InvoiceVoucherID: d.InvoiceVoucherID,
		AllocatedAmount:  d.AllocatedAmount,
		AllocationDate:   d.AllocationDate,
		PartyID:          d.PartyID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentAllocation converts a model PaymentAllocation to a domain PaymentAllocation
func ToDomainPaymentAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:     m.AllocationID,
		PaymentVoucherID: m.PaymentVoucherID,
		InvoiceVoucherID: m.InvoiceVoucherID,
		AllocatedAmount:  m.AllocatedAmount,
		AllocationDate:   m.AllocationDate,
		PartyID:          m.PartyID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentAllocationSlice converts a slice of model PaymentAllocations to a slice of domain PaymentAllocations
func ToDomainPaymentAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	ds := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentAllocation(m)
	}
	return ds
}
