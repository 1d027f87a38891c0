// Package domain defines the opportunity pipeline entity and its audit events
package domain

import "time"

// EntityKind tags one side of an opportunity
type EntityKind string

// Entity kinds
const (
	KindFundraiser EntityKind = "FUNDRAISER"
	KindProvider   EntityKind = "CAPITAL_PROVIDER"
	KindPartner    EntityKind = "PARTNER"
)

// Direction identifies which kind of pairing an opportunity represents
type Direction string

// Directions; providers and partners never match each other
const (
	DirFundraiserToCapital Direction = "fundraiser_to_capital"
	DirFundraiserToPartner Direction = "fundraiser_to_partner"
	DirCapitalToFundraiser Direction = "capital_to_fundraiser"
	DirPartnerToFundraiser Direction = "partner_to_fundraiser"
)

// Status is the pipeline state of an opportunity.
// Transitions are deliberately unrestricted (any to any): the workflow that
// sets them lives outside the engine and already writes arbitrary jumps;
// enforcing a forward-only pipeline here would break that data
type Status string

// Pipeline statuses
const (
	StatusNew          Status = "NEW"
	StatusQualified    Status = "QUALIFIED"
	StatusContacted    Status = "CONTACTED"
	StatusInDiscussion Status = "IN_DISCUSSION"
	StatusPilot        Status = "PILOT"
	StatusDeal         Status = "DEAL"
	StatusLost         Status = "LOST"
)

// QualifyThreshold is the score at or above which an automated upsert
// promotes NEW to QUALIFIED
const QualifyThreshold = 70.0

// ValidStatus reports whether s is a known pipeline status
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusQualified, StatusContacted, StatusInDiscussion,
		StatusPilot, StatusDeal, StatusLost:
		return true
	}
	return false
}

// Breakdown maps term names (tags, text, stage, geo, engagement, budget)
// to their unrounded contributions; the capped sum equals the score
type Breakdown map[string]float64

// Opportunity is the durable, status-tracked candidate relationship.
// Identity is the composite (direction, source, target) key; the engine
// updates rows in place and never deletes them
type Opportunity struct {
	ID string // uuid

	Direction  Direction
	SourceKind EntityKind
	SourceID   int64
	TargetKind EntityKind
	TargetID   int64

	Score     float64
	Breakdown Breakdown
	Status    Status

	// deal economics, set by external workflow after creation
	DealType        *string
	Round           *string
	ProposedAmount  *float64
	Valuation       *float64
	OwnershipTarget *float64
	FundID          *int64
	BudgetFitLabel  *string
	BudgetFitScore  *float64
	PilotCost       *float64
	PilotFit        *string
	TermDeadline    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the composite identity of an opportunity
func (o Opportunity) Key() UpsertKey {
	return UpsertKey{
		Direction:  o.Direction,
		SourceKind: o.SourceKind,
		SourceID:   o.SourceID,
		TargetKind: o.TargetKind,
		TargetID:   o.TargetID,
	}
}

// UpsertKey is the five-part uniqueness tuple
type UpsertKey struct {
	Direction  Direction
	SourceKind EntityKind
	SourceID   int64
	TargetKind EntityKind
	TargetID   int64
}

// UpsertInput carries one scored pair into the store
type UpsertInput struct {
	Key       UpsertKey
	Score     float64
	Breakdown Breakdown
}

// DealPatch is a partial update of the deal-economics attributes;
// nil fields are left untouched
type DealPatch struct {
	DealType        *string
	Round           *string
	ProposedAmount  *float64
	Valuation       *float64
	OwnershipTarget *float64
	FundID          *int64
	BudgetFitLabel  *string
	BudgetFitScore  *float64
	PilotCost       *float64
	PilotFit        *string
	TermDeadline    *time.Time
}

// EventType classifies audit events
type EventType string

// Event types
const (
	EventAutoCreated  EventType = "auto_created"
	EventRescored     EventType = "rescored"
	EventStatusChange EventType = "status_changed"
	EventNote         EventType = "note"
	EventEmailSent    EventType = "email_sent"
	EventMeeting      EventType = "meeting"
	EventPilotStarted EventType = "pilot_started"
	EventDealSigned   EventType = "deal_signed"
)

// Event is one append-only audit record. Events are never updated or deleted
type Event struct {
	ID            string // uuid
	OpportunityID string
	OccurredAt    time.Time
	Type          EventType
	Payload       map[string]any
}

// AfterKey supports keyset pagination over (updated_at, id)
type AfterKey struct {
	UpdatedAt time.Time
	ID        string
}
