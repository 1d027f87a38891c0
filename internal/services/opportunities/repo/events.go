package repo

import (
	"context"

	perr "dealflow/internal/platform/errors"
	"dealflow/internal/services/opportunities/domain"
)

// InsertEvent implements Storage. The ledger is append-only: this is the
// only statement that touches opportunity_events
func (s *pg) InsertEvent(ctx context.Context, ev domain.Event) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO opportunity_events (id, opportunity_id, occurred_at, type, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.OpportunityID, ev.OccurredAt, string(ev.Type), ev.Payload,
	)
	return perr.FromPostgres(err, "append opportunity event")
}

// Events implements Storage, newest first
func (s *pg) Events(ctx context.Context, opportunityID string, limit int) ([]domain.Event, error) {
	rows, err := s.q.Query(ctx, `
		SELECT e.id::text, e.opportunity_id::text, e.occurred_at, e.type::text, e.payload
		FROM opportunity_events e
		WHERE e.opportunity_id = $1
		ORDER BY e.occurred_at DESC, e.id DESC
		LIMIT $2`, opportunityID, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list opportunity events")
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var ev domain.Event
		var typ string
		if err := rows.Scan(&ev.ID, &ev.OpportunityID, &ev.OccurredAt, &typ, &ev.Payload); err != nil {
			return nil, perr.FromPostgres(err, "scan opportunity event")
		}
		ev.Type = domain.EventType(typ)
		out = append(out, ev)
	}
	return out, rows.Err()
}
