package services

import (
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Masters first, they have no service dependencies.
	container.Account = NewAccountService(repos.AccountRepo)
	container.Party = NewPartyService(repos.PartyRepo, repos.AccountRepo)
	container.Product = NewProductService(repos.ProductRepo)

	// Voucher posting is the core engine; allocation reuses its template
	// derivation for quick payments.
	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.AllocationRepo,
		repos.AccountRepo,
		repos.PartyRepo,
		repos.ProductRepo,
	)
	container.Allocation = NewAllocationService(
		repos.AllocationRepo,
		repos.VoucherRepo,
		container.Voucher,
	)

	container.Ledger = NewLedgerService(repos.ReportingRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg)

	return container
}
