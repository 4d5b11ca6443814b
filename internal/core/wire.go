package core

import (
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/clientview/internal/config"
)

// NewServiceFromConfig builds the fetcher, loader, repository and service
// described by cfg. The snapshot stays empty until the first Reload.
func NewServiceFromConfig(cfg *config.Config) (*Service, error) {
	base := DefaultPolicy()
	if cfg.Report.ReferenceWage > 0 {
		base.ReferenceWage = decimal.NewFromFloat(cfg.Report.ReferenceWage)
	}
	policy, err := LoadPolicy(cfg.Report.PolicyFile, base)
	if err != nil {
		return nil, err
	}

	loader := NewLoader(NewSourceFetcher(nil),
		Sources{
			Branches: cfg.Sheets.BranchesURL,
			Clients:  cfg.Sheets.ClientsURL,
			Accounts: cfg.Sheets.AccountsURL,
		},
		WithFetchTimeout(cfg.Sheets.FetchTimeout),
		WithMaxSheetBytes(cfg.Sheets.MaxBytes),
	)
	return NewService(NewRepository(loader),
		WithPolicy(policy),
		WithPageSizes(PageSizes(cfg.Pagination.PageSizes)),
	), nil
}
