package storage

import (
	"context"
	"time"

	"github.com/avdeyev/worklog/internal/models"
)

// EventStore defines the append-only event ledger interface.
//
// AppendStart and AppendStop are the only write paths for regular operation
// and must perform the "read latest event, then insert" pair atomically:
// under concurrent invocations for one owner exactly one may observe
// "not running" and transition to running.
type EventStore interface {
	// AppendStart appends a START event for the owner.
	// Returns ErrSessionOpen if the owner's latest event is already a START.
	AppendStart(ctx context.Context, ownerID string, ts time.Time, note string) (*models.Event, error)

	// AppendStop appends a STOP event for the owner and returns the matched
	// START together with the new STOP.
	// Returns ErrNoOpenSession if the owner has no unmatched START.
	AppendStop(ctx context.Context, ownerID string, ts time.Time) (start, stop *models.Event, err error)

	// LastEvent returns the owner's most recent event (by timestamp, then id).
	// Returns ErrEventNotFound when the owner has no events.
	LastEvent(ctx context.Context, ownerID string) (*models.Event, error)

	// EventsInRange returns the owner's events with ts in [from, to),
	// ordered by timestamp then id.
	EventsInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error)

	// FirstStartInRange returns the owner's earliest START event with
	// ts in [from, to), or ErrEventNotFound.
	FirstStartInRange(ctx context.Context, ownerID string, from, to time.Time) (*models.Event, error)

	// TransformNotes rewrites every non-empty note in place using fn,
	// within a single transaction. Used by the encryption toggle migrations.
	TransformNotes(ctx context.Context, fn func(note string) (string, error)) error

	// DeleteEvents removes all events that belong to the owner.
	DeleteEvents(ctx context.Context, ownerID string) error

	// DeleteAllEvents wipes the ledger entirely (key rotation).
	DeleteAllEvents(ctx context.Context) error
}
