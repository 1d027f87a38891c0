// Package service implements the matching orchestrator
package service

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"dealflow/internal/core/budget"
	"dealflow/internal/core/feature"
	"dealflow/internal/core/score"
	perr "dealflow/internal/platform/errors"
	matchdom "dealflow/internal/services/match/domain"
	oppdom "dealflow/internal/services/opportunities/domain"
	orgdom "dealflow/internal/services/orgs/domain"
)

// Config for the match service
type Config struct {
	Workers int // candidate scoring concurrency, >=1
}

// Service implements domain.RunnerPort
type Service struct {
	Dir  orgdom.ReaderPort
	Opps oppdom.WriterPort
	Cfg  Config
}

// timeNow is a seam for tests
var timeNow = time.Now

// New constructs a new match service
func New(dir orgdom.ReaderPort, opps oppdom.WriterPort, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Service{Dir: dir, Opps: opps, Cfg: cfg}
}

// candidate is one scored counterparty, in enumeration order
type candidate struct {
	key       oppdom.UpsertKey
	total     float64
	breakdown oppdom.Breakdown
}

// GenerateForFundraiser implements domain.RunnerPort
func (s *Service) GenerateForFundraiser(ctx context.Context, in matchdom.Input) (matchdom.Result, error) {
	if err := validate(in); err != nil {
		return matchdom.Result{}, err
	}

	fr, err := s.Dir.FundraiserByID(ctx, in.AnchorID)
	if err != nil {
		return zeroIfMissing(err)
	}
	anchor := feature.Extract(fundraiserRecord(fr))
	ask := budget.Ask{Min: fr.AskMin, Max: fr.AskMax}
	now := timeNow().UTC()

	providers, err := s.Dir.Providers(ctx)
	if err != nil {
		return matchdom.Result{}, err
	}
	partners, err := s.Dir.Partners(ctx)
	if err != nil {
		return matchdom.Result{}, err
	}
	if len(providers) == 0 && len(partners) == 0 {
		return matchdom.Result{}, nil
	}

	// providers first, then partners: this enumeration order is the
	// tie-break for equal scores
	cands := make([]candidate, len(providers)+len(partners))
	errs := make([]error, len(providers)+len(partners))

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range providers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			p := providers[i]
			res := score.Pair(anchor, feature.Extract(providerRecord(p)), now)

			funds, err := s.Dir.FundsForProvider(ctx, p.ID)
			if err != nil {
				errs[i] = err
				return
			}
			bonus := budget.Fit(ask, budgetFunds(funds), now)

			cands[i] = candidate{
				key: oppdom.UpsertKey{
					Direction:  oppdom.DirFundraiserToCapital,
					SourceKind: oppdom.KindFundraiser,
					SourceID:   fr.ID,
					TargetKind: oppdom.KindProvider,
					TargetID:   p.ID,
				},
				total:     math.Min(res.Score+bonus, score.MaxScore),
				breakdown: withBudget(res.Breakdown, bonus),
			}
		}(i)
	}
	for i := range partners {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			p := partners[i]
			res := score.Pair(anchor, feature.Extract(partnerRecord(p)), now)
			cands[len(providers)+i] = candidate{
				key: oppdom.UpsertKey{
					Direction:  oppdom.DirFundraiserToPartner,
					SourceKind: oppdom.KindFundraiser,
					SourceID:   fr.ID,
					TargetKind: oppdom.KindPartner,
					TargetID:   p.ID,
				},
				total:     res.Score,
				breakdown: toBreakdown(res.Breakdown),
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return matchdom.Result{}, err
		}
	}
	return s.persist(ctx, cands, in)
}

// GenerateForProvider implements domain.RunnerPort; providers only ever
// match fundraisers, and the provider's own funds grade every pair
func (s *Service) GenerateForProvider(ctx context.Context, in matchdom.Input) (matchdom.Result, error) {
	if err := validate(in); err != nil {
		return matchdom.Result{}, err
	}

	pv, err := s.Dir.ProviderByID(ctx, in.AnchorID)
	if err != nil {
		return zeroIfMissing(err)
	}
	funds, err := s.Dir.FundsForProvider(ctx, pv.ID)
	if err != nil {
		return matchdom.Result{}, err
	}

	anchor := feature.Extract(providerRecord(pv))
	now := timeNow().UTC()
	bf := budgetFunds(funds)

	fundraisers, err := s.Dir.Fundraisers(ctx)
	if err != nil {
		return matchdom.Result{}, err
	}
	if len(fundraisers) == 0 {
		return matchdom.Result{}, nil
	}

	cands := s.scoreFundraisers(fundraisers, anchor, now, func(fr orgdom.Fundraiser, res score.Result) candidate {
		bonus := budget.Fit(budget.Ask{Min: fr.AskMin, Max: fr.AskMax}, bf, now)
		return candidate{
			key: oppdom.UpsertKey{
				Direction:  oppdom.DirCapitalToFundraiser,
				SourceKind: oppdom.KindProvider,
				SourceID:   pv.ID,
				TargetKind: oppdom.KindFundraiser,
				TargetID:   fr.ID,
			},
			total:     math.Min(res.Score+bonus, score.MaxScore),
			breakdown: withBudget(res.Breakdown, bonus),
		}
	})
	return s.persist(ctx, cands, in)
}

// GenerateForPartner implements domain.RunnerPort; no budget term
func (s *Service) GenerateForPartner(ctx context.Context, in matchdom.Input) (matchdom.Result, error) {
	if err := validate(in); err != nil {
		return matchdom.Result{}, err
	}

	pt, err := s.Dir.PartnerByID(ctx, in.AnchorID)
	if err != nil {
		return zeroIfMissing(err)
	}
	anchor := feature.Extract(partnerRecord(pt))
	now := timeNow().UTC()

	fundraisers, err := s.Dir.Fundraisers(ctx)
	if err != nil {
		return matchdom.Result{}, err
	}
	if len(fundraisers) == 0 {
		return matchdom.Result{}, nil
	}

	cands := s.scoreFundraisers(fundraisers, anchor, now, func(fr orgdom.Fundraiser, res score.Result) candidate {
		return candidate{
			key: oppdom.UpsertKey{
				Direction:  oppdom.DirPartnerToFundraiser,
				SourceKind: oppdom.KindPartner,
				SourceID:   pt.ID,
				TargetKind: oppdom.KindFundraiser,
				TargetID:   fr.ID,
			},
			total:     res.Score,
			breakdown: toBreakdown(res.Breakdown),
		}
	})
	return s.persist(ctx, cands, in)
}

// scoreFundraisers fans candidate scoring out over the worker pool,
// preserving enumeration order in the result slice
func (s *Service) scoreFundraisers(
	frs []orgdom.Fundraiser,
	anchor feature.Bundle,
	now time.Time,
	build func(orgdom.Fundraiser, score.Result) candidate,
) []candidate {
	cands := make([]candidate, len(frs))

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}
	for i := range frs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			fr := frs[i]
			res := score.Pair(anchor, feature.Extract(fundraiserRecord(fr)), now)
			cands[i] = build(fr, res)
		}(i)
	}
	wg.Wait()
	return cands
}

// persist applies the selection policy: threshold first, then a stable
// descending sort, then the top K. Each upsert is atomic with its audit
// event; a storage failure aborts the call without touching later candidates
func (s *Service) persist(ctx context.Context, cands []candidate, in matchdom.Input) (matchdom.Result, error) {
	kept := cands[:0]
	for _, c := range cands {
		if c.total >= in.MinScore {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].total > kept[j].total })
	if len(kept) > in.TopK {
		kept = kept[:in.TopK]
	}

	count := 0
	for _, c := range kept {
		if _, _, err := s.Opps.UpsertAuto(ctx, oppdom.UpsertInput{
			Key:       c.key,
			Score:     c.total,
			Breakdown: c.breakdown,
		}); err != nil {
			return matchdom.Result{}, err
		}
		count++
	}
	return matchdom.Result{Created: count}, nil
}

func validate(in matchdom.Input) error {
	if in.TopK < 1 {
		return perr.InvalidArgf("topK must be >= 1, got %d", in.TopK)
	}
	if in.MinScore < 0 || in.MinScore > 100 {
		return perr.InvalidArgf("minScore %v outside [0,100]", in.MinScore)
	}
	return nil
}

// zeroIfMissing turns an absent anchor into an empty result; a missing
// anchor is a no-op, not a failure
func zeroIfMissing(err error) (matchdom.Result, error) {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return matchdom.Result{}, nil
	}
	return matchdom.Result{}, err
}

func toBreakdown(b score.Breakdown) oppdom.Breakdown {
	return oppdom.Breakdown{
		"tags":       b.Tags,
		"text":       b.Text,
		"stage":      b.Stage,
		"geo":        b.Geo,
		"engagement": b.Engagement,
	}
}

func withBudget(b score.Breakdown, bonus float64) oppdom.Breakdown {
	out := toBreakdown(b)
	out["budget"] = bonus
	return out
}
