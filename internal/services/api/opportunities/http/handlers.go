// Package http provides http transport for the opportunity pipeline
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"dealflow/internal/modkit/httpkit"
	perr "dealflow/internal/platform/errors"
	"dealflow/internal/services/api/opportunities/domain"
	oppdom "dealflow/internal/services/opportunities/domain"
)

// Ports are the pipeline ports the handlers call into
type Ports struct {
	Writer oppdom.WriterPort
	Reader oppdom.ReaderPort
}

// Register mounts opportunity endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{ports: p}

	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.StatusInput](r, "/status", h.status)
	httpkit.PostJSON[domain.DealInput](r, "/deal", h.deal)
	httpkit.Get(r, "/{id}", h.byID)
	httpkit.Get(r, "/{id}/events", h.events)
}

type handlers struct{ ports Ports }

// swagger:route POST /opportunities/list Opportunities opportunitiesList
// @Summary List opportunities by entity or status
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Selector and page"
// @Success 200 {object} domain.ListResult "ok"
// @Router /opportunities/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	byEntity := in.EntityKind != "" || in.EntityID != 0
	byStatus := in.Status != ""
	if byEntity == byStatus {
		return nil, perr.InvalidArgf("set either entity_kind+entity_id or status")
	}
	if byEntity && (in.EntityKind == "" || in.EntityID == 0) {
		return nil, perr.InvalidArgf("entity_kind and entity_id are both required")
	}

	after := oppdom.AfterKey{UpdatedAt: in.After.UpdatedAt, ID: in.After.ID}

	var (
		rows []oppdom.Opportunity
		next oppdom.AfterKey
		err  error
	)
	if byEntity {
		rows, next, err = h.ports.Reader.ListForEntity(
			r.Context(), oppdom.EntityKind(in.EntityKind), in.EntityID, after, in.Limit)
	} else {
		rows, next, err = h.ports.Reader.ListByStatus(
			r.Context(), oppdom.Status(in.Status), after, in.Limit)
	}
	if err != nil {
		return nil, err
	}

	out := domain.ListResult{
		Items: make([]domain.Opportunity, 0, len(rows)),
		Next:  domain.AfterKey{UpdatedAt: next.UpdatedAt, ID: next.ID},
	}
	for _, row := range rows {
		out.Items = append(out.Items, domain.FromOpportunity(row))
	}
	return out, nil
}

// swagger:route POST /opportunities/status Opportunities opportunitiesStatus
// @Summary Transition an opportunity's pipeline status
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param payload body domain.StatusInput true "Transition"
// @Success 200 {object} domain.Opportunity "ok"
// @Router /opportunities/status [post]
func (h *handlers) status(r *stdhttp.Request, in domain.StatusInput) (any, error) {
	o, err := h.ports.Writer.UpdateStatus(r.Context(), in.ID, oppdom.Status(in.Status), in.Reason)
	if err != nil {
		return nil, err
	}
	return domain.FromOpportunity(o), nil
}

// swagger:route POST /opportunities/deal Opportunities opportunitiesDeal
// @Summary Apply a partial deal-economics update
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param payload body domain.DealInput true "Patch"
// @Success 200 {object} domain.Opportunity "ok"
// @Router /opportunities/deal [post]
func (h *handlers) deal(r *stdhttp.Request, in domain.DealInput) (any, error) {
	o, err := h.ports.Writer.UpdateDealFields(r.Context(), in.ID, oppdom.DealPatch{
		DealType:        in.DealType,
		Round:           in.Round,
		ProposedAmount:  in.ProposedAmount,
		Valuation:       in.Valuation,
		OwnershipTarget: in.OwnershipTarget,
		FundID:          in.FundID,
		BudgetFitLabel:  in.BudgetFitLabel,
		BudgetFitScore:  in.BudgetFitScore,
		PilotCost:       in.PilotCost,
		PilotFit:        in.PilotFit,
		TermDeadline:    in.TermDeadline,
	})
	if err != nil {
		return nil, err
	}
	return domain.FromOpportunity(o), nil
}

// swagger:route GET /opportunities/{id} Opportunities opportunitiesByID
// @Summary Fetch one opportunity
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity id"
// @Success 200 {object} domain.Opportunity "ok"
// @Router /opportunities/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("missing opportunity id")
	}
	o, err := h.ports.Reader.ByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return domain.FromOpportunity(o), nil
}

// swagger:route GET /opportunities/{id}/events Opportunities opportunitiesEvents
// @Summary List an opportunity's audit events, newest first
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity id"
// @Success 200 {array} domain.Event "ok"
// @Router /opportunities/{id}/events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("missing opportunity id")
	}
	evs, err := h.ports.Reader.Events(r.Context(), id, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(evs))
	for _, ev := range evs {
		out = append(out, domain.FromEvent(ev))
	}
	return out, nil
}
