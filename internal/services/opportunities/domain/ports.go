package domain

import "context"

// WriterPort mutates the opportunity pipeline.
// Every mutation appends exactly one audit event in the same transaction
type WriterPort interface {
	// UpsertAuto inserts or updates by the composite key; created reports
	// whether a new row was inserted. Conflicts on the key are resolved
	// atomically in storage, never surfaced to the caller
	UpsertAuto(ctx context.Context, in UpsertInput) (o Opportunity, created bool, err error)

	// UpdateStatus transitions status (any to any) and records the reason
	UpdateStatus(ctx context.Context, id string, status Status, reason string) (Opportunity, error)

	// UpdateDealFields applies a partial deal-economics update
	UpdateDealFields(ctx context.Context, id string, patch DealPatch) (Opportunity, error)

	// LogEvent appends a standalone audit event
	LogEvent(ctx context.Context, ev Event) error
}

// ReaderPort serves read-backs out of the scoring hot path
type ReaderPort interface {
	ByID(ctx context.Context, id string) (Opportunity, error)
	ListForEntity(ctx context.Context, kind EntityKind, id int64, after AfterKey, limit int) ([]Opportunity, AfterKey, error)
	ListByStatus(ctx context.Context, status Status, after AfterKey, limit int) ([]Opportunity, AfterKey, error)
	Events(ctx context.Context, opportunityID string, limit int) ([]Event, error)
}
