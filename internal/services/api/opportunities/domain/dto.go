// Package domain holds DTOs for opportunities http contracts
package domain

import (
	"time"

	oppdom "dealflow/internal/services/opportunities/domain"
)

// AfterKey is the keyset cursor over (updated_at, id)
type AfterKey struct {
	UpdatedAt time.Time `json:"updated_at,omitempty" example:"2025-06-01T12:00:00Z"`
	ID        string    `json:"id,omitempty" example:"8b9c2f90-4f39-4a4e-9d26-9b8f62f1a001"`
}

// ListInput selects opportunities by entity or by status, paginated.
// Exactly one of entity_kind/entity_id or status must be set
type ListInput struct {
	EntityKind string `json:"entity_kind,omitempty" validate:"omitempty,oneof=FUNDRAISER CAPITAL_PROVIDER PARTNER" example:"FUNDRAISER"`
	EntityID   int64  `json:"entity_id,omitempty" validate:"omitempty,min=1" example:"42"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=NEW QUALIFIED CONTACTED IN_DISCUSSION PILOT DEAL LOST" example:"QUALIFIED"`

	After AfterKey `json:"after,omitempty"`
	Limit int      `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// ListResult is one page of opportunities plus the next cursor
type ListResult struct {
	Items []Opportunity `json:"items"`
	Next  AfterKey      `json:"next,omitempty"`
}

// StatusInput transitions one opportunity's pipeline status
type StatusInput struct {
	ID     string `json:"id" validate:"required,uuid4" example:"8b9c2f90-4f39-4a4e-9d26-9b8f62f1a001"`
	Status string `json:"status" validate:"required,oneof=NEW QUALIFIED CONTACTED IN_DISCUSSION PILOT DEAL LOST" example:"CONTACTED"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500" example:"intro call booked"`
}

// DealInput applies a partial deal-economics update; omitted fields are untouched
type DealInput struct {
	ID string `json:"id" validate:"required,uuid4" example:"8b9c2f90-4f39-4a4e-9d26-9b8f62f1a001"`

	DealType        *string    `json:"deal_type,omitempty" validate:"omitempty,max=50" example:"equity"`
	Round           *string    `json:"round,omitempty" validate:"omitempty,max=50" example:"seed"`
	ProposedAmount  *float64   `json:"proposed_amount,omitempty" validate:"omitempty,min=0" example:"750000"`
	Valuation       *float64   `json:"valuation,omitempty" validate:"omitempty,min=0" example:"6000000"`
	OwnershipTarget *float64   `json:"ownership_target,omitempty" validate:"omitempty,min=0,max=100" example:"12.5"`
	FundID          *int64     `json:"fund_id,omitempty" validate:"omitempty,min=1" example:"3"`
	BudgetFitLabel  *string    `json:"budget_fit_label,omitempty" validate:"omitempty,max=50" example:"strong"`
	BudgetFitScore  *float64   `json:"budget_fit_score,omitempty" validate:"omitempty,min=0,max=20" example:"17.5"`
	PilotCost       *float64   `json:"pilot_cost,omitempty" validate:"omitempty,min=0" example:"25000"`
	PilotFit        *string    `json:"pilot_fit,omitempty" validate:"omitempty,max=50" example:"good"`
	TermDeadline    *time.Time `json:"term_deadline,omitempty"`
}

// Opportunity is the transport shape of one pipeline row
type Opportunity struct {
	ID string `json:"id" example:"8b9c2f90-4f39-4a4e-9d26-9b8f62f1a001"`

	Direction  string `json:"direction" example:"fundraiser_to_capital"`
	SourceKind string `json:"source_kind" example:"FUNDRAISER"`
	SourceID   int64  `json:"source_id" example:"42"`
	TargetKind string `json:"target_kind" example:"CAPITAL_PROVIDER"`
	TargetID   int64  `json:"target_id" example:"7"`

	Score     float64            `json:"score" example:"83.4"`
	Breakdown map[string]float64 `json:"breakdown"`
	Status    string             `json:"status" example:"QUALIFIED"`

	DealType        *string    `json:"deal_type,omitempty"`
	Round           *string    `json:"round,omitempty"`
	ProposedAmount  *float64   `json:"proposed_amount,omitempty"`
	Valuation       *float64   `json:"valuation,omitempty"`
	OwnershipTarget *float64   `json:"ownership_target,omitempty"`
	FundID          *int64     `json:"fund_id,omitempty"`
	BudgetFitLabel  *string    `json:"budget_fit_label,omitempty"`
	BudgetFitScore  *float64   `json:"budget_fit_score,omitempty"`
	PilotCost       *float64   `json:"pilot_cost,omitempty"`
	PilotFit        *string    `json:"pilot_fit,omitempty"`
	TermDeadline    *time.Time `json:"term_deadline,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is the transport shape of one audit record
type Event struct {
	ID            string         `json:"id"`
	OpportunityID string         `json:"opportunity_id"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Type          string         `json:"type" example:"status_changed"`
	Payload       map[string]any `json:"payload,omitempty"`
}

// FromOpportunity maps a pipeline row into its transport shape
func FromOpportunity(o oppdom.Opportunity) Opportunity {
	return Opportunity{
		ID:              o.ID,
		Direction:       string(o.Direction),
		SourceKind:      string(o.SourceKind),
		SourceID:        o.SourceID,
		TargetKind:      string(o.TargetKind),
		TargetID:        o.TargetID,
		Score:           o.Score,
		Breakdown:       o.Breakdown,
		Status:          string(o.Status),
		DealType:        o.DealType,
		Round:           o.Round,
		ProposedAmount:  o.ProposedAmount,
		Valuation:       o.Valuation,
		OwnershipTarget: o.OwnershipTarget,
		FundID:          o.FundID,
		BudgetFitLabel:  o.BudgetFitLabel,
		BudgetFitScore:  o.BudgetFitScore,
		PilotCost:       o.PilotCost,
		PilotFit:        o.PilotFit,
		TermDeadline:    o.TermDeadline,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromEvent maps an audit record into its transport shape
func FromEvent(ev oppdom.Event) Event {
	return Event{
		ID:            ev.ID,
		OpportunityID: ev.OpportunityID,
		OccurredAt:    ev.OccurredAt,
		Type:          string(ev.Type),
		Payload:       ev.Payload,
	}
}
