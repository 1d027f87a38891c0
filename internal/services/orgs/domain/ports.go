package domain

import "context"

// ReaderPort is the read access the matching engine consumes.
// Lookups by id return ErrorCodeNotFound (platform errors) when absent
type ReaderPort interface {
	Fundraisers(ctx context.Context) ([]Fundraiser, error)
	FundraiserByID(ctx context.Context, id int64) (Fundraiser, error)

	Providers(ctx context.Context) ([]Provider, error)
	ProviderByID(ctx context.Context, id int64) (Provider, error)

	Partners(ctx context.Context) ([]Partner, error)
	PartnerByID(ctx context.Context, id int64) (Partner, error)

	// FundsForProvider returns the provider's funds; empty slice when none
	FundsForProvider(ctx context.Context, providerID int64) ([]Fund, error)
}
