package journal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EventKind identifies a navigation event category.
type EventKind string

const (
	// KindNavigate records an in-tab forward navigation to a route.
	KindNavigate EventKind = "navigate"

	// KindBack records one discrete back event.
	KindBack EventKind = "back"

	// KindSelectTab records a tab selection change.
	KindSelectTab EventKind = "select_tab"

	// KindResetTab records a tab being reset to a single route.
	KindResetTab EventKind = "reset_tab"

	// KindClearTab records a tab being popped to its root.
	KindClearTab EventKind = "clear_tab"
)

// Event is one recorded navigation event.
type Event struct {
	// ID is the event's UUIDv7 id.
	ID string

	// Seq is the event's logical clock position. Strictly increasing;
	// the sole ordering authority.
	Seq int64

	// Kind categorizes the event.
	Kind EventKind

	// TabID is the targeted tab's canonical id. Empty for kinds that
	// target the selected tab implicitly (navigate, back).
	TabID string

	// Route is the destination route, for kinds that carry one
	// (navigate, reset_tab).
	Route string
}

// Append writes one event to the log, stamping it with the next seq and
// a fresh UUIDv7 id. Returns the stored event.
func (j *Journal) Append(ctx context.Context, kind EventKind, tabID, route string) (Event, error) {
	e := Event{
		ID:    uuid.Must(uuid.NewV7()).String(),
		Seq:   j.clock.Next(),
		Kind:  kind,
		TabID: tabID,
		Route: route,
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO nav_events (id, seq, kind, tab_id, route) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Seq, string(e.Kind), e.TabID, e.Route,
	)
	if err != nil {
		return Event{}, fmt.Errorf("append %s event: %w", e.Kind, err)
	}
	return e, nil
}
