package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	m := models.Voucher{
		VoucherID:            d.VoucherID,
		VoucherNumber:        d.VoucherNumber,
		VoucherType:          string(d.VoucherType),
		VoucherDate:          d.VoucherDate,
		PartyID:              d.PartyID,
		Subtotal:             d.Subtotal,
		DiscountRate:         d.DiscountRate,
		DiscountAmount:       d.DiscountAmount,
		TotalAmount:          d.TotalAmount,
		TaxTotal:             d.TaxTotal,
		PaidFromAccountID:    d.PaidFromAccountID,
		Narration:            d.Narration,
		Status:               string(d.Status),
		CreatedFromInvoiceID: d.CreatedFromInvoiceID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
		DeletedAt:            d.DeletedAt,
	}
	if d.PaymentStatus != "" {
		status := string(d.PaymentStatus)
		m.PaymentStatus = &status
	}
	return m
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	d := domain.Voucher{
		VoucherID:            m.VoucherID,
		VoucherNumber:        m.VoucherNumber,
		VoucherType:          domain.VoucherType(m.VoucherType),
		VoucherDate:          m.VoucherDate,
		PartyID:              m.PartyID,
		Subtotal:             m.Subtotal,
		DiscountRate:         m.DiscountRate,
		DiscountAmount:       m.DiscountAmount,
		TotalAmount:          m.TotalAmount,
		TaxTotal:             m.TaxTotal,
		PaidFromAccountID:    m.PaidFromAccountID,
		Narration:            m.Narration,
		Status:               domain.VoucherStatus(m.Status),
		CreatedFromInvoiceID: m.CreatedFromInvoiceID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
		DeletedAt:            m.DeletedAt,
	}
	if m.PaymentStatus != nil {
		d.PaymentStatus = domain.PaymentStatus(*m.PaymentStatus)
	}
	return d
}

// ToDomainVoucherSlice converts a slice of model Vouchers to a slice of domain Vouchers
func ToDomainVoucherSlice(ms []models.Voucher) []domain.Voucher {
	ds := make([]domain.Voucher, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucher(m)
	}
	return ds
}

// ToModelVoucherItem converts a domain VoucherItem to a model VoucherItem
func ToModelVoucherItem(d domain.VoucherItem) models.VoucherItem {
	return models.VoucherItem{
		ItemID:           d.ItemID,
		VoucherID:        d.VoucherID,
		ProductID:        d.ProductID,
		AccountID:        d.AccountID,
		Description:      d.Description,
		InitialQuantity:  d.InitialQuantity,
		Count:            d.Count,
		DeductionPerUnit: d.DeductionPerUnit,
		FinalQuantity:    d.FinalQuantity,
		Rate:             d.Rate,
		Amount:           d.Amount,
		DiscountPercent:  d.DiscountPercent,
		DiscountAmount:   d.DiscountAmount,
		TaxableAmount:    d.TaxableAmount,
		TaxRate:          d.TaxRate,
		TaxAmount:        d.TaxAmount,
		Debit:            d.Debit,
		Credit:           d.Credit,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucherItem converts a model VoucherItem to a domain VoucherItem
func ToDomainVoucherItem(m models.VoucherItem) domain.VoucherItem {
	return domain.VoucherItem{
		ItemID:           m.ItemID,
		VoucherID:        m.VoucherID,
		ProductID:        m.ProductID,
		AccountID:        m.AccountID,
		Description:      m.Description,
		InitialQuantity:  m.InitialQuantity,
		Count:            m.Count,
		DeductionPerUnit: m.DeductionPerUnit,
		FinalQuantity:    m.FinalQuantity,
		Rate:             m.Rate,
		Amount:           m.Amount,
		DiscountPercent:  m.DiscountPercent,
		DiscountAmount:   m.DiscountAmount,
		TaxableAmount:    m.TaxableAmount,
		TaxRate:          m.TaxRate,
		TaxAmount:        m.TaxAmount,
		Debit:            m.Debit,
		Credit:           m.Credit,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherItemSlice converts a slice of model VoucherItems to a slice of domain VoucherItems
func ToDomainVoucherItemSlice(ms []models.VoucherItem) []domain.VoucherItem {
	ds := make([]domain.VoucherItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucherItem(m)
	}
	return ds
}
