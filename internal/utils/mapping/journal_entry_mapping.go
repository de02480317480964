package mapping

import (
	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/munimji/munim_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		VoucherID:   d.VoucherID,
		AccountID:   d.AccountID,
		EntryDate:   d.EntryDate,
		Debit:       d.Debit,
		Credit:      d.Credit,
		IsManual:    d.IsManual,
		Narration:   d.Narration,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		VoucherID:   m.VoucherID,
		AccountID:   m.AccountID,
		EntryDate:   m.EntryDate,
		Debit:       m.Debit,
		Credit:      m.Credit,
		IsManual:    m.IsManual,
		Narration:   m.Narration,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to a slice of domain JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
