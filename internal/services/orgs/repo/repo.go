// Package repo provides the Postgres repository for the directory read side
package repo

import (
	"context"

	"dealflow/internal/modkit/repokit"
	perr "dealflow/internal/platform/errors"
	"dealflow/internal/services/orgs/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the directory repository
type Storage interface {
	Fundraisers(ctx context.Context) ([]domain.Fundraiser, error)
	FundraiserByID(ctx context.Context, id int64) (domain.Fundraiser, error)
	Providers(ctx context.Context) ([]domain.Provider, error)
	ProviderByID(ctx context.Context, id int64) (domain.Provider, error)
	Partners(ctx context.Context) ([]domain.Partner, error)
	PartnerByID(ctx context.Context, id int64) (domain.Partner, error)
	FundsForProvider(ctx context.Context, providerID int64) ([]domain.Fund, error)
}

const fundraiserCols = `
	f.id, f.name,
	COALESCE(f.category, ''), COALESCE(f.description, ''), COALESCE(f.address, ''),
	COALESCE(f.stage, ''), COALESCE(f.needs, ''),
	f.ask_min, f.ask_max,
	f.views, f.likes, f.bookmarks, f.created_at`

func scanFundraiser(r repokit.Row, out *domain.Fundraiser) error {
	return r.Scan(
		&out.ID, &out.Name,
		&out.Category, &out.Description, &out.Address,
		&out.Stage, &out.Needs,
		&out.AskMin, &out.AskMax,
		&out.Views, &out.Likes, &out.Bookmarks, &out.CreatedAt,
	)
}

// Fundraisers implements Storage
func (s *pg) Fundraisers(ctx context.Context) ([]domain.Fundraiser, error) {
	rows, err := s.q.Query(ctx, `SELECT `+fundraiserCols+` FROM fundraisers f ORDER BY f.id`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list fundraisers")
	}
	defer rows.Close()

	var out []domain.Fundraiser
	for rows.Next() {
		var fr domain.Fundraiser
		if err := scanFundraiser(rows, &fr); err != nil {
			return nil, perr.FromPostgres(err, "scan fundraiser")
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

// FundraiserByID implements Storage
func (s *pg) FundraiserByID(ctx context.Context, id int64) (domain.Fundraiser, error) {
	var fr domain.Fundraiser
	err := scanFundraiser(s.q.QueryRow(ctx, `SELECT `+fundraiserCols+` FROM fundraisers f WHERE f.id = $1`, id), &fr)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Fundraiser{}, perr.NotFoundf("fundraiser %d", id)
		}
		return domain.Fundraiser{}, perr.FromPostgres(err, "get fundraiser")
	}
	return fr, nil
}

// Providers implements Storage
func (s *pg) Providers(ctx context.Context) ([]domain.Provider, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.focus, ''), COALESCE(p.description, ''), COALESCE(p.address, '')
		FROM capital_providers p ORDER BY p.id`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list providers")
	}
	defer rows.Close()

	var out []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Focus, &p.Description, &p.Address); err != nil {
			return nil, perr.FromPostgres(err, "scan provider")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProviderByID implements Storage
func (s *pg) ProviderByID(ctx context.Context, id int64) (domain.Provider, error) {
	var p domain.Provider
	err := s.q.QueryRow(ctx, `
		SELECT p.id, p.name, COALESCE(p.focus, ''), COALESCE(p.description, ''), COALESCE(p.address, '')
		FROM capital_providers p WHERE p.id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Focus, &p.Description, &p.Address)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Provider{}, perr.NotFoundf("capital provider %d", id)
		}
		return domain.Provider{}, perr.FromPostgres(err, "get provider")
	}
	return p, nil
}

// Partners implements Storage
func (s *pg) Partners(ctx context.Context) ([]domain.Partner, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.partnership_type, ''), COALESCE(p.description, ''), COALESCE(p.address, '')
		FROM partners p ORDER BY p.id`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list partners")
	}
	defer rows.Close()

	var out []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.PartnershipType, &p.Description, &p.Address); err != nil {
			return nil, perr.FromPostgres(err, "scan partner")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PartnerByID implements Storage
func (s *pg) PartnerByID(ctx context.Context, id int64) (domain.Partner, error) {
	var p domain.Partner
	err := s.q.QueryRow(ctx, `
		SELECT p.id, p.name, COALESCE(p.partnership_type, ''), COALESCE(p.description, ''), COALESCE(p.address, '')
		FROM partners p WHERE p.id = $1`, id).
		Scan(&p.ID, &p.Name, &p.PartnershipType, &p.Description, &p.Address)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Partner{}, perr.NotFoundf("partner %d", id)
		}
		return domain.Partner{}, perr.FromPostgres(err, "get partner")
	}
	return p, nil
}

// FundsForProvider implements Storage
func (s *pg) FundsForProvider(ctx context.Context, providerID int64) ([]domain.Fund, error) {
	rows, err := s.q.Query(ctx, `
		SELECT
			f.id, f.provider_id, f.name,
			f.ticket_min, f.ticket_max, f.total_capital, f.uncommitted_capital,
			f.window_from, f.window_to,
			COALESCE(f.sector_focus, '{}'), COALESCE(f.geo_focus, '{}'), COALESCE(f.stage_focus, '{}')
		FROM funds f
		WHERE f.provider_id = $1
		ORDER BY f.id`, providerID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list funds")
	}
	defer rows.Close()

	out := make([]domain.Fund, 0, 4)
	for rows.Next() {
		var f domain.Fund
		if err := rows.Scan(
			&f.ID, &f.ProviderID, &f.Name,
			&f.TicketMin, &f.TicketMax, &f.Total, &f.Uncommitted,
			&f.WindowFrom, &f.WindowTo,
			&f.SectorFocus, &f.GeoFocus, &f.StageFocus,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan fund")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
