// Package http provides http transport for match generation
package http

import (
	stdhttp "net/http"

	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/services/api/match/domain"
	matchdom "dealflow/internal/services/match/domain"
)

// defaults applied when the caller omits tuning knobs
const (
	defaultTopK     = 20
	defaultMinScore = 0.0
)

// Register mounts match endpoints on the given router
func Register(r httpkit.Router, runner matchdom.RunnerPort) {
	h := &handlers{runner: runner}

	httpkit.PostJSON[domain.GenerateInput](r, "/fundraisers/generate", h.forFundraiser)
	httpkit.PostJSON[domain.GenerateInput](r, "/providers/generate", h.forProvider)
	httpkit.PostJSON[domain.GenerateInput](r, "/partners/generate", h.forPartner)
}

type handlers struct{ runner matchdom.RunnerPort }

// swagger:route POST /match/fundraisers/generate Match matchForFundraiser
// @Summary Generate opportunities for a fundraiser
// @Tags Match
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Anchor and tuning"
// @Success 200 {object} domain.GenerateResult "ok"
// @Router /match/fundraisers/generate [post]
func (h *handlers) forFundraiser(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	res, err := h.runner.GenerateForFundraiser(r.Context(), toInput(in))
	if err != nil {
		return nil, err
	}
	return domain.GenerateResult{Created: res.Created}, nil
}

// swagger:route POST /match/providers/generate Match matchForProvider
// @Summary Generate opportunities for a capital provider
// @Tags Match
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Anchor and tuning"
// @Success 200 {object} domain.GenerateResult "ok"
// @Router /match/providers/generate [post]
func (h *handlers) forProvider(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	res, err := h.runner.GenerateForProvider(r.Context(), toInput(in))
	if err != nil {
		return nil, err
	}
	return domain.GenerateResult{Created: res.Created}, nil
}

// swagger:route POST /match/partners/generate Match matchForPartner
// @Summary Generate opportunities for a partner
// @Tags Match
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Anchor and tuning"
// @Success 200 {object} domain.GenerateResult "ok"
// @Router /match/partners/generate [post]
func (h *handlers) forPartner(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	res, err := h.runner.GenerateForPartner(r.Context(), toInput(in))
	if err != nil {
		return nil, err
	}
	return domain.GenerateResult{Created: res.Created}, nil
}

func toInput(in domain.GenerateInput) matchdom.Input {
	out := matchdom.Input{AnchorID: in.AnchorID, TopK: in.TopK, MinScore: in.MinScore}
	if out.TopK == 0 {
		out.TopK = defaultTopK
	}
	if out.MinScore == 0 {
		out.MinScore = defaultMinScore
	}
	return out
}
