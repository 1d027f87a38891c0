package score

import (
	"math"
	"time"

	"dealflow/internal/core/feature"
)

// engagement sub-weights; bookmarks signal stronger intent than raw views
const (
	subWeightViews     = 0.5
	subWeightLikes     = 1.0
	subWeightBookmarks = 1.5

	// decayRate halves the bonus roughly every 35 days
	decayRate = 0.02
)

// engagementBonus maps popularity counters to [0, WeightEngagement].
// Counters are log-dampened so a viral outlier cannot saturate the term,
// then the whole bonus decays exponentially with the fundraiser's age
func engagementBonus(e feature.Engagement, now time.Time) float64 {
	raw := subWeightViews*dampen(e.Views) +
		subWeightLikes*dampen(e.Likes) +
		subWeightBookmarks*dampen(e.Bookmarks)
	raw /= subWeightViews + subWeightLikes + subWeightBookmarks

	decay := 1.0
	if !e.CreatedAt.IsZero() && now.After(e.CreatedAt) {
		ageDays := now.Sub(e.CreatedAt).Hours() / 24
		decay = math.Exp(-decayRate * ageDays)
	}
	return WeightEngagement * raw * decay
}

// dampen compresses a counter into [0,1]; 100 events saturate the signal
func dampen(n int) float64 {
	if n <= 0 {
		return 0
	}
	v := math.Log1p(float64(n)) / math.Log(101)
	return math.Min(v, 1)
}
