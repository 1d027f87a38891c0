// Package repo provides the Postgres repository for opportunities
package repo

import (
	"context"
	"fmt"
	"strings"

	"dealflow/internal/modkit/repokit"
	perr "dealflow/internal/platform/errors"
	"dealflow/internal/services/opportunities/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the opportunities repository
type Storage interface {
	Upsert(ctx context.Context, id string, in domain.UpsertInput, autoStatus domain.Status) (domain.Opportunity, bool, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (domain.Opportunity, error)
	PatchDeal(ctx context.Context, id string, patch domain.DealPatch) (domain.Opportunity, error)
	InsertEvent(ctx context.Context, ev domain.Event) error

	ByID(ctx context.Context, id string) (domain.Opportunity, error)
	ListForEntity(ctx context.Context, kind domain.EntityKind, id int64, after domain.AfterKey, limit int) ([]domain.Opportunity, domain.AfterKey, error)
	ListByStatus(ctx context.Context, status domain.Status, after domain.AfterKey, limit int) ([]domain.Opportunity, domain.AfterKey, error)
	Events(ctx context.Context, opportunityID string, limit int) ([]domain.Event, error)
}

const oppCols = `
	o.id::text, o.direction::text, o.source_kind::text, o.source_id, o.target_kind::text, o.target_id,
	o.score, o.breakdown, o.status::text,
	o.deal_type, o.round, o.proposed_amount, o.valuation, o.ownership_target,
	o.fund_id, o.budget_fit_label, o.budget_fit_score, o.pilot_cost, o.pilot_fit, o.term_deadline,
	o.created_at, o.updated_at`

func scanOpp(r repokit.Row, o *domain.Opportunity) error {
	var direction, sourceKind, targetKind, status string
	err := r.Scan(
		&o.ID, &direction, &sourceKind, &o.SourceID, &targetKind, &o.TargetID,
		&o.Score, &o.Breakdown, &status,
		&o.DealType, &o.Round, &o.ProposedAmount, &o.Valuation, &o.OwnershipTarget,
		&o.FundID, &o.BudgetFitLabel, &o.BudgetFitScore, &o.PilotCost, &o.PilotFit, &o.TermDeadline,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	o.Direction = domain.Direction(direction)
	o.SourceKind = domain.EntityKind(sourceKind)
	o.TargetKind = domain.EntityKind(targetKind)
	o.Status = domain.Status(status)
	return nil
}

// Upsert implements Storage. Identity conflicts are resolved atomically by
// the ON CONFLICT clause: score and breakdown are overwritten, the status is
// re-derived only while it is still automation-owned (NEW or QUALIFIED), and
// a manually set status survives regeneration. (xmax = 0) distinguishes a
// fresh insert from an update of the existing row
func (s *pg) Upsert(
	ctx context.Context,
	id string,
	in domain.UpsertInput,
	autoStatus domain.Status,
) (domain.Opportunity, bool, error) {
	var (
		o       domain.Opportunity
		created bool
	)
	row := s.q.QueryRow(ctx, `
		INSERT INTO opportunities AS o
			(id, direction, source_kind, source_id, target_kind, target_id, score, breakdown, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (direction, source_kind, source_id, target_kind, target_id) DO UPDATE SET
			score      = EXCLUDED.score,
			breakdown  = EXCLUDED.breakdown,
			status     = CASE
				WHEN o.status IN ('NEW', 'QUALIFIED') THEN EXCLUDED.status
				ELSE o.status
			END,
			updated_at = now()
		RETURNING `+oppCols+`, (xmax = 0) AS inserted`,
		id, string(in.Key.Direction), string(in.Key.SourceKind), in.Key.SourceID,
		string(in.Key.TargetKind), in.Key.TargetID,
		in.Score, in.Breakdown, string(autoStatus),
	)

	var direction, sourceKind, targetKind, status string
	err := row.Scan(
		&o.ID, &direction, &sourceKind, &o.SourceID, &targetKind, &o.TargetID,
		&o.Score, &o.Breakdown, &status,
		&o.DealType, &o.Round, &o.ProposedAmount, &o.Valuation, &o.OwnershipTarget,
		&o.FundID, &o.BudgetFitLabel, &o.BudgetFitScore, &o.PilotCost, &o.PilotFit, &o.TermDeadline,
		&o.CreatedAt, &o.UpdatedAt,
		&created,
	)
	if err != nil {
		return domain.Opportunity{}, false, perr.FromPostgres(err, "upsert opportunity")
	}
	o.Direction = domain.Direction(direction)
	o.SourceKind = domain.EntityKind(sourceKind)
	o.TargetKind = domain.EntityKind(targetKind)
	o.Status = domain.Status(status)
	return o, created, nil
}

// SetStatus implements Storage
func (s *pg) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Opportunity, error) {
	var o domain.Opportunity
	err := scanOpp(s.q.QueryRow(ctx, `
		UPDATE opportunities o SET status = $2, updated_at = now()
		WHERE o.id = $1
		RETURNING `+oppCols, id, string(status)), &o)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Opportunity{}, perr.NotFoundf("opportunity %s", id)
		}
		return domain.Opportunity{}, perr.FromPostgres(err, "update status")
	}
	return o, nil
}

// PatchDeal implements Storage; nil patch fields are left untouched
func (s *pg) PatchDeal(ctx context.Context, id string, patch domain.DealPatch) (domain.Opportunity, error) {
	var sets []string
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.DealType != nil {
		set("deal_type", *patch.DealType)
	}
	if patch.Round != nil {
		set("round", *patch.Round)
	}
	if patch.ProposedAmount != nil {
		set("proposed_amount", *patch.ProposedAmount)
	}
	if patch.Valuation != nil {
		set("valuation", *patch.Valuation)
	}
	if patch.OwnershipTarget != nil {
		set("ownership_target", *patch.OwnershipTarget)
	}
	if patch.FundID != nil {
		set("fund_id", *patch.FundID)
	}
	if patch.BudgetFitLabel != nil {
		set("budget_fit_label", *patch.BudgetFitLabel)
	}
	if patch.BudgetFitScore != nil {
		set("budget_fit_score", *patch.BudgetFitScore)
	}
	if patch.PilotCost != nil {
		set("pilot_cost", *patch.PilotCost)
	}
	if patch.PilotFit != nil {
		set("pilot_fit", *patch.PilotFit)
	}
	if patch.TermDeadline != nil {
		set("term_deadline", *patch.TermDeadline)
	}
	if len(sets) == 0 {
		return s.ByID(ctx, id)
	}

	var o domain.Opportunity
	err := scanOpp(s.q.QueryRow(ctx, `
		UPDATE opportunities o SET `+strings.Join(sets, ", ")+`, updated_at = now()
		WHERE o.id = $1
		RETURNING `+oppCols, args...), &o)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Opportunity{}, perr.NotFoundf("opportunity %s", id)
		}
		return domain.Opportunity{}, perr.FromPostgres(err, "patch deal fields")
	}
	return o, nil
}

// ByID implements Storage
func (s *pg) ByID(ctx context.Context, id string) (domain.Opportunity, error) {
	var o domain.Opportunity
	err := scanOpp(s.q.QueryRow(ctx, `SELECT `+oppCols+` FROM opportunities o WHERE o.id = $1`, id), &o)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Opportunity{}, perr.NotFoundf("opportunity %s", id)
		}
		return domain.Opportunity{}, perr.FromPostgres(err, "get opportunity")
	}
	return o, nil
}

// ListForEntity implements Storage; matches rows where the entity sits on
// either side of the pair
func (s *pg) ListForEntity(
	ctx context.Context,
	kind domain.EntityKind,
	id int64,
	after domain.AfterKey,
	limit int,
) ([]domain.Opportunity, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`SELECT ` + oppCols + ` FROM opportunities o
		WHERE ((o.source_kind = ` + arg(string(kind)) + ` AND o.source_id = ` + arg(id) + `)
			OR (o.target_kind = ` + arg(string(kind)) + ` AND o.target_id = ` + arg(id) + `))
	`)
	if after.ID != "" {
		sb.WriteString("  AND (o.updated_at, o.id) > (" + arg(after.UpdatedAt) + ", " + arg(after.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY o.updated_at, o.id\nLIMIT " + arg(limit))

	return s.list(ctx, sb.String(), args...)
}

// ListByStatus implements Storage
func (s *pg) ListByStatus(
	ctx context.Context,
	status domain.Status,
	after domain.AfterKey,
	limit int,
) ([]domain.Opportunity, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`SELECT ` + oppCols + ` FROM opportunities o WHERE o.status = ` + arg(string(status)) + "\n")
	if after.ID != "" {
		sb.WriteString("  AND (o.updated_at, o.id) > (" + arg(after.UpdatedAt) + ", " + arg(after.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY o.updated_at, o.id\nLIMIT " + arg(limit))

	return s.list(ctx, sb.String(), args...)
}

func (s *pg) list(ctx context.Context, sql string, args ...any) ([]domain.Opportunity, domain.AfterKey, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.AfterKey{}, perr.FromPostgres(err, "list opportunities")
	}
	defer rows.Close()

	var out []domain.Opportunity
	var last domain.AfterKey
	for rows.Next() {
		var o domain.Opportunity
		if err := scanOpp(rows, &o); err != nil {
			return nil, domain.AfterKey{}, perr.FromPostgres(err, "scan opportunity")
		}
		out = append(out, o)
		last = domain.AfterKey{UpdatedAt: o.UpdatedAt, ID: o.ID}
	}
	return out, last, rows.Err()
}
