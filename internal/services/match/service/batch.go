package service

import (
	"context"

	perr "dealflow/internal/platform/errors"
	"dealflow/internal/platform/logger"
	matchdom "dealflow/internal/services/match/domain"
)

// GenerateAll implements domain.RunnerPort. Each anchor is an independent,
// retryable unit: a per-anchor failure is logged and counted so the rest of
// the batch still runs
func (s *Service) GenerateAll(ctx context.Context, kind matchdom.AnchorKind, in matchdom.Input) (matchdom.BatchResult, error) {
	if err := validate(in); err != nil {
		return matchdom.BatchResult{}, err
	}

	ids, run, err := s.batchPlan(ctx, kind)
	if err != nil {
		return matchdom.BatchResult{}, err
	}

	log := logger.Named("match")
	out := matchdom.BatchResult{Anchors: len(ids)}
	for _, id := range ids {
		per := in
		per.AnchorID = id
		res, err := run(ctx, per)
		if err != nil {
			out.Failed++
			log.Warn().Err(err).
				Str("kind", string(kind)).
				Int64("anchor", id).
				Msg("batch anchor failed")
			continue
		}
		out.Created += res.Created
	}
	return out, nil
}

// batchPlan resolves a kind to the anchor id list and the per-anchor runner
func (s *Service) batchPlan(
	ctx context.Context,
	kind matchdom.AnchorKind,
) ([]int64, func(context.Context, matchdom.Input) (matchdom.Result, error), error) {
	switch kind {
	case matchdom.AnchorFundraiser:
		frs, err := s.Dir.Fundraisers(ctx)
		if err != nil {
			return nil, nil, err
		}
		ids := make([]int64, len(frs))
		for i, f := range frs {
			ids[i] = f.ID
		}
		return ids, s.GenerateForFundraiser, nil

	case matchdom.AnchorProvider:
		pvs, err := s.Dir.Providers(ctx)
		if err != nil {
			return nil, nil, err
		}
		ids := make([]int64, len(pvs))
		for i, p := range pvs {
			ids[i] = p.ID
		}
		return ids, s.GenerateForProvider, nil

	case matchdom.AnchorPartner:
		pts, err := s.Dir.Partners(ctx)
		if err != nil {
			return nil, nil, err
		}
		ids := make([]int64, len(pts))
		for i, p := range pts {
			ids[i] = p.ID
		}
		return ids, s.GenerateForPartner, nil
	}
	return nil, nil, perr.InvalidArgf("unknown anchor kind %q", kind)
}
