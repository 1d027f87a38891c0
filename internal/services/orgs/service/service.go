// Package service provides the directory read service
package service

import (
	"context"

	"dealflow/internal/modkit/repokit"
	"dealflow/internal/services/orgs/domain"
	"dealflow/internal/services/orgs/repo"
)

// Service implements domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a new directory service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, Binder: b}
}

// Fundraisers implements domain.ReaderPort
func (s *Service) Fundraisers(ctx context.Context) ([]domain.Fundraiser, error) {
	return run(ctx, s, func(r repo.Storage) ([]domain.Fundraiser, error) { return r.Fundraisers(ctx) })
}

// FundraiserByID implements domain.ReaderPort
func (s *Service) FundraiserByID(ctx context.Context, id int64) (domain.Fundraiser, error) {
	return run(ctx, s, func(r repo.Storage) (domain.Fundraiser, error) { return r.FundraiserByID(ctx, id) })
}

// Providers implements domain.ReaderPort
func (s *Service) Providers(ctx context.Context) ([]domain.Provider, error) {
	return run(ctx, s, func(r repo.Storage) ([]domain.Provider, error) { return r.Providers(ctx) })
}

// ProviderByID implements domain.ReaderPort
func (s *Service) ProviderByID(ctx context.Context, id int64) (domain.Provider, error) {
	return run(ctx, s, func(r repo.Storage) (domain.Provider, error) { return r.ProviderByID(ctx, id) })
}

// Partners implements domain.ReaderPort
func (s *Service) Partners(ctx context.Context) ([]domain.Partner, error) {
	return run(ctx, s, func(r repo.Storage) ([]domain.Partner, error) { return r.Partners(ctx) })
}

// PartnerByID implements domain.ReaderPort
func (s *Service) PartnerByID(ctx context.Context, id int64) (domain.Partner, error) {
	return run(ctx, s, func(r repo.Storage) (domain.Partner, error) { return r.PartnerByID(ctx, id) })
}

// FundsForProvider implements domain.ReaderPort
func (s *Service) FundsForProvider(ctx context.Context, providerID int64) ([]domain.Fund, error) {
	return run(ctx, s, func(r repo.Storage) ([]domain.Fund, error) { return r.FundsForProvider(ctx, providerID) })
}

// run binds the repo inside a transaction and executes one read
func run[T any](ctx context.Context, s *Service, fn func(repo.Storage) (T, error)) (T, error) {
	var out T
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = fn(s.Binder.Bind(q))
		return err
	})
	return out, err
}
