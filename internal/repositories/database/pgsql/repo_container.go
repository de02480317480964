package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool, accountRepo)
	productRepo := newPgxProductRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	allocationRepo := newPgxAllocationRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		PartyRepo:      partyRepo,
		ProductRepo:    productRepo,
		VoucherRepo:    voucherRepo,
		AllocationRepo: allocationRepo,
		ReportingRepo:  reportingRepo,
		UserRepo:       userRepo,
	}
}
