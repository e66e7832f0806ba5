package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const sessionTable = "session_events"

type sessionRow struct {
	ID           int    `sql:"id"`
	Sequence     int64  `sql:"sequence"`
	Timestamp    int64  `sql:"timestamp"`
	SessionID    string `sql:"session_id"`
	Kind         string `sql:"kind"`
	Total        int    `sql:"total"`
	Correct      int    `sql:"correct"`
	Wrong        int    `sql:"wrong"`
	DurationSecs int    `sql:"duration_secs"`
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, sessionTable,
		[]string{"session_id", "kind", "total", "correct", "wrong", "duration_secs"},
		data.SessionID, data.Kind, data.Total, data.Correct, data.Wrong, data.DurationSecs)
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "session_id", "kind", "total", "correct", "wrong", "duration_secs").
		From(entsql.Table(sessionTable))
	applyOpts(sel, opts)
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var scanned []sessionRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan session events: %w", err)
	}

	events := make([]SessionEvent, 0, len(scanned))
	for _, row := range scanned {
		events = append(events, SessionEvent{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: time.UnixMilli(row.Timestamp),
			SessionEventData: SessionEventData{
				SessionID:    row.SessionID,
				Kind:         row.Kind,
				Total:        row.Total,
				Correct:      row.Correct,
				Wrong:        row.Wrong,
				DurationSecs: row.DurationSecs,
			},
		})
	}
	return events, nil
}

// applyOpts adds the shared filters and newest-first ordering.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
