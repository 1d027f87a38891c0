package domain

import (
	"context"

	oppdom "dealflow/internal/services/opportunities/domain"
	orgdom "dealflow/internal/services/orgs/domain"
)

// RunnerPort is the external surface of the matching engine
type RunnerPort interface {
	// GenerateForFundraiser matches a fundraiser against all capital
	// providers (with budget fit) and all partners
	GenerateForFundraiser(ctx context.Context, in Input) (Result, error)

	// GenerateForProvider matches a capital provider against all
	// fundraisers, applying the provider's own fund list to every pair
	GenerateForProvider(ctx context.Context, in Input) (Result, error)

	// GenerateForPartner matches a partner against all fundraisers
	GenerateForPartner(ctx context.Context, in Input) (Result, error)

	// GenerateAll regenerates for every anchor of the given kind. Each
	// anchor is an independent unit: a failure on one is counted, not
	// fatal to the rest
	GenerateAll(ctx context.Context, kind AnchorKind, in Input) (BatchResult, error)
}

// Ports are the collaborators injected into the match module
type Ports struct {
	Directory     orgdom.ReaderPort // required
	Opportunities oppdom.WriterPort // required
}
