// Package score computes weighted compatibility between two feature bundles.
// All functions are pure; callers supply the clock
package score

import (
	"math"
	"time"

	"dealflow/internal/core/feature"
)

// Term weights. The five terms sum to at most 100 before the budget bonus
const (
	WeightTags       = 40.0
	WeightText       = 25.0
	WeightStage      = 15.0
	WeightGeo        = 10.0
	WeightEngagement = 10.0
)

// MaxScore caps the final total, budget bonus included
const MaxScore = 100.0

// Breakdown itemizes each contributing term, unrounded, for audit
type Breakdown struct {
	Tags       float64 `json:"tags"`
	Text       float64 `json:"text"`
	Stage      float64 `json:"stage"`
	Geo        float64 `json:"geo"`
	Engagement float64 `json:"engagement"`
}

// Result is a scored pair
type Result struct {
	Score     float64
	Breakdown Breakdown
}

// Pair scores two bundles of complementary kinds at the given instant.
// Missing signals degrade the matching term to zero, never an error
func Pair(a, b feature.Bundle, now time.Time) Result {
	bd := Breakdown{
		Tags: WeightTags * Jaccard(a.Tags, b.Tags),
		Text: WeightText * Cosine(a.Vector, b.Vector),
		Geo:  geoFit(a.Location, b.Location),
	}

	// stage and engagement only apply when exactly one side is a fundraiser
	if fr, other, ok := fundraiserOf(a, b); ok {
		bd.Stage = stageFit(fr, other)
		if fr.Engagement != nil {
			bd.Engagement = engagementBonus(*fr.Engagement, now)
		}
	}

	total := bd.Tags + bd.Text + bd.Stage + bd.Geo + bd.Engagement
	return Result{Score: math.Min(total, MaxScore), Breakdown: bd}
}

// Jaccard is intersection-over-union of two tag sets; 0 when both are empty
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Cosine is normalized dot-product similarity; 0 when either vector is all-zero
func Cosine(a, b [feature.VectorDim]float64) float64 {
	var dot, na, nb float64
	for i := 0; i < feature.VectorDim; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func fundraiserOf(a, b feature.Bundle) (fr, other feature.Bundle, ok bool) {
	af := a.Kind == feature.KindFundraiser
	bf := b.Kind == feature.KindFundraiser
	switch {
	case af && !bf:
		return a, b, true
	case bf && !af:
		return b, a, true
	}
	return feature.Bundle{}, feature.Bundle{}, false
}
