package journal

import (
	"context"
	"fmt"
)

// Events returns every recorded event in deterministic order
// (ORDER BY seq ASC, id ASC).
func (j *Journal) Events(ctx context.Context) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, seq, kind, tab_id, route
		   FROM nav_events
		  ORDER BY seq ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.Seq, &kind, &e.TabID, &e.Route); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// Count returns the number of recorded events.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nav_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Stats summarizes a journal's contents per event kind.
type Stats struct {
	TotalEvents int
	Navigates   int
	Backs       int
	TabSelects  int
	TabResets   int
	TabClears   int
	LastSeq     int64
}

// ReadStats computes summary statistics over the whole log.
func (j *Journal) ReadStats(ctx context.Context) (Stats, error) {
	events, err := j.Events(ctx)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	for _, e := range events {
		s.TotalEvents++
		if e.Seq > s.LastSeq {
			s.LastSeq = e.Seq
		}
		switch e.Kind {
		case KindNavigate:
			s.Navigates++
		case KindBack:
			s.Backs++
		case KindSelectTab:
			s.TabSelects++
		case KindResetTab:
			s.TabResets++
		case KindClearTab:
			s.TabClears++
		}
	}
	return s, nil
}
