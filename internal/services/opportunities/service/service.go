// Package service implements the opportunity store on top of the Postgres repo
package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"dealflow/internal/modkit/repokit"
	"dealflow/internal/modkit/scope"
	perr "dealflow/internal/platform/errors"
	"dealflow/internal/services/opportunities/domain"
	"dealflow/internal/services/opportunities/repo"
)

// Config for the opportunities service
type Config struct {
	// HardLimit caps page sizes on list reads; defaults to 500 if <=0
	HardLimit int
}

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new opportunities service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	return &Service{DB: db, Binder: b, Cfg: cfg}
}

// UpsertAuto implements domain.WriterPort.
// The row upsert and its audit event commit as one transaction: a failure on
// either leaves no partial trace of this pair
func (s *Service) UpsertAuto(ctx context.Context, in domain.UpsertInput) (domain.Opportunity, bool, error) {
	if in.Score < 0 || in.Score > 100 || math.IsNaN(in.Score) {
		return domain.Opportunity{}, false, perr.InvalidArgf("score %v outside [0,100]", in.Score)
	}

	autoStatus := domain.StatusNew
	if in.Score >= domain.QualifyThreshold {
		autoStatus = domain.StatusQualified
	}

	var (
		out     domain.Opportunity
		created bool
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)

		o, ins, err := r.Upsert(ctx, uuid.NewString(), in, autoStatus)
		if err != nil {
			return err
		}

		typ := domain.EventRescored
		if ins {
			typ = domain.EventAutoCreated
		}
		if err := r.InsertEvent(ctx, domain.Event{
			ID:            uuid.NewString(),
			OpportunityID: o.ID,
			OccurredAt:    time.Now().UTC(),
			Type:          typ,
			Payload: map[string]any{
				"score":     o.Score,
				"breakdown": o.Breakdown,
				"status":    string(o.Status),
			},
		}); err != nil {
			return err
		}

		out, created = o, ins
		return nil
	})
	if err != nil {
		return domain.Opportunity{}, false, err
	}
	return out, created, nil
}

// UpdateStatus implements domain.WriterPort. Any-to-any transitions are
// allowed; every call appends exactly one status_changed event
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status, reason string) (domain.Opportunity, error) {
	if !domain.ValidStatus(status) {
		return domain.Opportunity{}, perr.InvalidArgf("unknown status %q", status)
	}

	var out domain.Opportunity
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)

		prev, err := r.ByID(ctx, id)
		if err != nil {
			return err
		}
		o, err := r.SetStatus(ctx, id, status)
		if err != nil {
			return err
		}

		payload := map[string]any{
			"from": string(prev.Status),
			"to":   string(status),
		}
		if reason != "" {
			payload["reason"] = reason
		}
		// actor attribution rides in on the request scope when present
		if who, ok := scope.Get(ctx, "actor"); ok {
			payload["actor"] = who
		}
		if err := r.InsertEvent(ctx, domain.Event{
			ID:            uuid.NewString(),
			OpportunityID: o.ID,
			OccurredAt:    time.Now().UTC(),
			Type:          domain.EventStatusChange,
			Payload:       payload,
		}); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return domain.Opportunity{}, err
	}
	return out, nil
}

// UpdateDealFields implements domain.WriterPort
func (s *Service) UpdateDealFields(ctx context.Context, id string, patch domain.DealPatch) (domain.Opportunity, error) {
	var out domain.Opportunity
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)

		o, err := r.PatchDeal(ctx, id, patch)
		if err != nil {
			return err
		}
		if err := r.InsertEvent(ctx, domain.Event{
			ID:            uuid.NewString(),
			OpportunityID: o.ID,
			OccurredAt:    time.Now().UTC(),
			Type:          domain.EventRescored,
			Payload:       map[string]any{"fields": patchedFields(patch)},
		}); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return domain.Opportunity{}, err
	}
	return out, nil
}

// LogEvent implements domain.WriterPort
func (s *Service) LogEvent(ctx context.Context, ev domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if who, ok := scope.Get(ctx, "actor"); ok {
		if ev.Payload == nil {
			ev.Payload = map[string]any{}
		}
		ev.Payload["actor"] = who
	}
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).InsertEvent(ctx, ev)
	})
}

// ByID implements domain.ReaderPort
func (s *Service) ByID(ctx context.Context, id string) (domain.Opportunity, error) {
	var out domain.Opportunity
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).ByID(ctx, id)
		return err
	})
	return out, err
}

// ListForEntity implements domain.ReaderPort
func (s *Service) ListForEntity(
	ctx context.Context,
	kind domain.EntityKind,
	id int64,
	after domain.AfterKey,
	limit int,
) ([]domain.Opportunity, domain.AfterKey, error) {
	limit = s.capLimit(limit)
	var (
		out  []domain.Opportunity
		next domain.AfterKey
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, next, err = s.Binder.Bind(q).ListForEntity(ctx, kind, id, after, limit)
		return err
	})
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	return out, next, nil
}

// ListByStatus implements domain.ReaderPort
func (s *Service) ListByStatus(
	ctx context.Context,
	status domain.Status,
	after domain.AfterKey,
	limit int,
) ([]domain.Opportunity, domain.AfterKey, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.AfterKey{}, perr.InvalidArgf("unknown status %q", status)
	}
	limit = s.capLimit(limit)
	var (
		out  []domain.Opportunity
		next domain.AfterKey
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, next, err = s.Binder.Bind(q).ListByStatus(ctx, status, after, limit)
		return err
	})
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	return out, next, nil
}

// Events implements domain.ReaderPort
func (s *Service) Events(ctx context.Context, opportunityID string, limit int) ([]domain.Event, error) {
	limit = s.capLimit(limit)
	var out []domain.Event
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).Events(ctx, opportunityID, limit)
		return err
	})
	return out, err
}

func (s *Service) capLimit(limit int) int {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		return s.Cfg.HardLimit
	}
	return limit
}

func patchedFields(p domain.DealPatch) []string {
	var fs []string
	add := func(name string, set bool) {
		if set {
			fs = append(fs, name)
		}
	}
	add("deal_type", p.DealType != nil)
	add("round", p.Round != nil)
	add("proposed_amount", p.ProposedAmount != nil)
	add("valuation", p.Valuation != nil)
	add("ownership_target", p.OwnershipTarget != nil)
	add("fund_id", p.FundID != nil)
	add("budget_fit_label", p.BudgetFitLabel != nil)
	add("budget_fit_score", p.BudgetFitScore != nil)
	add("pilot_cost", p.PilotCost != nil)
	add("pilot_fit", p.PilotFit != nil)
	add("term_deadline", p.TermDeadline != nil)
	return fs
}
