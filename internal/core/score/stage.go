package score

import (
	"strings"

	"dealflow/internal/core/feature"
)

// stageVocabulary is the fixed keyword set shared between a fundraiser's
// stated needs and a counterpart's focus text
var stageVocabulary = []string{
	"pre-seed",
	"seed",
	"series a",
	"series b",
	"pilot",
	"distribution",
	"integration",
	"growth",
	"mvp",
	"revenue",
}

// earlyStages are maturity labels treated as early-stage for the fallback rule
var earlyStages = map[string]struct{}{
	"idea":      {},
	"prototype": {},
	"mvp":       {},
	"pre-seed":  {},
	"seed":      {},
}

// stageFit scores how well a fundraiser's stage and needs line up with the
// counterpart's focus: full weight on a shared vocabulary keyword, a smaller
// credit when an early-stage fundraiser meets an early/seed-focused counterpart
func stageFit(fr, other feature.Bundle) float64 {
	needs := fr.Needs
	focus := other.Focus
	if needs != "" && focus != "" {
		for _, kw := range stageVocabulary {
			if strings.Contains(needs, kw) && strings.Contains(focus, kw) {
				return WeightStage
			}
		}
	}
	if _, early := earlyStages[fr.Stage]; early && focus != "" {
		if strings.Contains(focus, "early") || strings.Contains(focus, "seed") {
			return 8
		}
	}
	return 0
}
