// Package budget evaluates how well a fundraiser's ask fits a capital
// provider's funds. Pure; callers supply the clock
package budget

import (
	"math"
	"time"
)

// Score ceilings for the two per-fund components
const (
	MaxRangeScore        = 15.0
	MaxAvailabilityScore = 5.0

	// MaxScore is the ceiling of the whole budget bonus
	MaxScore = MaxRangeScore + MaxAvailabilityScore

	windowBonus       = 3.0
	dryPowderMaxBonus = 2.0
)

// Ask is a fundraiser's requested amount range; either bound may be unknown
type Ask struct {
	Min *float64
	Max *float64
}

// Fund describes one capital pool of a provider
type Fund struct {
	TicketMin   *float64
	TicketMax   *float64
	Total       *float64
	Uncommitted *float64
	WindowFrom  *time.Time
	WindowTo    *time.Time
}

// Fit returns the best achievable fit in [0, MaxScore] across all funds.
// No funds, or a fully unknown ask, yields exactly 0
func Fit(ask Ask, funds []Fund, now time.Time) float64 {
	if len(funds) == 0 {
		return 0
	}
	if ask.Min == nil && ask.Max == nil {
		return 0
	}
	best := 0.0
	for _, f := range funds {
		if s := rangeScore(ask, f) + availabilityScore(f, now); s > best {
			best = s
		}
	}
	return best
}

// rangeScore grades ticket-range compatibility in [0, MaxRangeScore].
// Overlapping known ranges earn the full score; disjoint ranges earn a
// proportional credit by the ratio of the nearer bounds; a fund with no
// known bounds contributes nothing
func rangeScore(ask Ask, f Fund) float64 {
	if f.TicketMin == nil && f.TicketMax == nil {
		return 0
	}

	if ask.Min != nil && ask.Max != nil && f.TicketMin != nil && f.TicketMax != nil {
		if *ask.Min <= *f.TicketMax && *f.TicketMin <= *ask.Max {
			return MaxRangeScore
		}
		if *ask.Max < *f.TicketMin {
			// ask sits below the fund's smallest check
			return clampRange(MaxRangeScore * *ask.Max / *f.TicketMin)
		}
		// ask exceeds the fund's largest check
		return clampRange(MaxRangeScore * *f.TicketMax / *ask.Min)
	}

	// partial knowledge: ratio of the nearer known bounds
	a := coalesce(ask.Max, ask.Min)
	t := coalesce(f.TicketMin, f.TicketMax)
	lo, hi := math.Min(*a, *t), math.Max(*a, *t)
	if hi <= 0 {
		return 0
	}
	return clampRange(MaxRangeScore * lo / hi)
}

// availabilityScore grades whether the fund can actually deploy right now:
// a flat credit for an open investment window plus a credit scaled by the
// share of uncommitted capital
func availabilityScore(f Fund, now time.Time) float64 {
	s := 0.0
	if inWindow(f, now) {
		s += windowBonus
	}
	if f.Total != nil && *f.Total > 0 && f.Uncommitted != nil && *f.Uncommitted > 0 {
		ratio := math.Min(*f.Uncommitted / *f.Total, 1)
		s += dryPowderMaxBonus * ratio
	}
	return s
}

// inWindow treats a missing bound as unbounded on that side; a fund with no
// window at all is not considered open
func inWindow(f Fund, now time.Time) bool {
	if f.WindowFrom == nil && f.WindowTo == nil {
		return false
	}
	if f.WindowFrom != nil && now.Before(*f.WindowFrom) {
		return false
	}
	if f.WindowTo != nil && now.After(*f.WindowTo) {
		return false
	}
	return true
}

func clampRange(v float64) float64 {
	return math.Max(0, math.Min(v, MaxRangeScore))
}

func coalesce(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
