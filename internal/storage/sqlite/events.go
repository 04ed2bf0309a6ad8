package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/storage"
)

// AppendStart appends a START event for the owner.
// Проверка "последнее событие" и вставка выполняются в одной immediate
// транзакции: при одновременных вызовах для одного владельца ровно один
// увидит "не запущено" и перейдет в running, второй получит ErrSessionOpen.
func (s *Storage) AppendStart(
	ctx context.Context,
	ownerID string,
	ts time.Time,
	note string,
) (*models.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, txError(err)
	}
	defer func() { _ = tx.Rollback() }()

	last, err := lastEventTx(ctx, tx, ownerID)
	if err != nil && !errors.Is(err, storage.ErrEventNotFound) {
		return nil, err
	}
	if last != nil && last.Kind == models.KindStart {
		return nil, storage.ErrSessionOpen
	}

	event := &models.Event{
		Timestamp: ts,
		Kind:      models.KindStart,
		Note:      note,
		OwnerID:   ownerID,
	}
	if err := insertEventTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, txError(err)
	}

	return event, nil
}

// AppendStop appends a STOP event and returns the matched START with it.
func (s *Storage) AppendStop(
	ctx context.Context,
	ownerID string,
	ts time.Time,
) (*models.Event, *models.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, txError(err)
	}
	defer func() { _ = tx.Rollback() }()

	last, err := lastEventTx(ctx, tx, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, nil, storage.ErrNoOpenSession
		}
		return nil, nil, err
	}
	if last.Kind != models.KindStart {
		return nil, nil, storage.ErrNoOpenSession
	}

	stop := &models.Event{
		Timestamp: ts,
		Kind:      models.KindStop,
		OwnerID:   ownerID,
	}
	if err := insertEventTx(ctx, tx, stop); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, txError(err)
	}

	return last, stop, nil
}

// LastEvent returns the owner's most recent event.
func (s *Storage) LastEvent(ctx context.Context, ownerID string) (*models.Event, error) {
	query := `
		SELECT id, ts, kind, note, user_id
		FROM events
		WHERE user_id = ?
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`
	return scanEvent(s.db.QueryRowContext(ctx, query, ownerID))
}

// EventsInRange returns the owner's events with ts in [from, to).
func (s *Storage) EventsInRange(
	ctx context.Context,
	ownerID string,
	from, to time.Time,
) ([]models.Event, error) {
	query := `
		SELECT id, ts, kind, note, user_id
		FROM events
		WHERE user_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			event models.Event
			nanos int64
			owner sql.NullString
		)
		if err := rows.Scan(&event.ID, &nanos, &event.Kind, &event.Note, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Timestamp = time.Unix(0, nanos)
		event.OwnerID = owner.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// FirstStartInRange returns the owner's earliest START with ts in [from, to).
func (s *Storage) FirstStartInRange(
	ctx context.Context,
	ownerID string,
	from, to time.Time,
) (*models.Event, error) {
	query := `
		SELECT id, ts, kind, note, user_id
		FROM events
		WHERE user_id = ? AND kind = 'START' AND ts >= ? AND ts < ?
		ORDER BY ts ASC, id ASC
		LIMIT 1
	`
	return scanEvent(s.db.QueryRowContext(ctx, query, ownerID, from.UnixNano(), to.UnixNano()))
}

// TransformNotes rewrites every non-empty note in place within one transaction.
func (s *Storage) TransformNotes(ctx context.Context, fn func(string) (string, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return txError(err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT id, note FROM events WHERE note != ''`)
	if err != nil {
		return fmt.Errorf("failed to query notes: %w", err)
	}

	// Читаем все заметки до начала UPDATE: на одном соединении нельзя
	// одновременно держать открытый курсор и выполнять запись
	type noteRow struct {
		id   int64
		note string
	}
	var notes []noteRow
	for rows.Next() {
		var row noteRow
		if err := rows.Scan(&row.id, &row.note); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate notes: %w", err)
	}
	rows.Close()

	for _, row := range notes {
		transformed, err := fn(row.note)
		if err != nil {
			return fmt.Errorf("failed to transform note %d: %w", row.id, err)
		}
		if transformed == row.note {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE events SET note = ? WHERE id = ?`, transformed, row.id); err != nil {
			return fmt.Errorf("failed to update note %d: %w", row.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return txError(err)
	}

	return nil
}

// DeleteEvents removes all events that belong to the owner.
func (s *Storage) DeleteEvents(ctx context.Context, ownerID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = ?`, ownerID); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

// DeleteAllEvents wipes the ledger entirely.
func (s *Storage) DeleteAllEvents(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

// lastEventTx читает последнее событие владельца внутри транзакции
func lastEventTx(ctx context.Context, tx *sql.Tx, ownerID string) (*models.Event, error) {
	query := `
		SELECT id, ts, kind, note, user_id
		FROM events
		WHERE user_id = ?
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`
	return scanEvent(tx.QueryRowContext(ctx, query, ownerID))
}

// insertEventTx вставляет событие и проставляет присвоенный id
func insertEventTx(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	var owner any
	if event.OwnerID != "" {
		owner = event.OwnerID
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (ts, kind, note, user_id) VALUES (?, ?, ?, ?)`,
		event.Timestamp.UnixNano(), event.Kind, event.Note, owner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get event id: %w", err)
	}
	event.ID = id

	return nil
}

func scanEvent(row *sql.Row) (*models.Event, error) {
	var (
		event   models.Event
		nanos   int64
		ownerID sql.NullString
	)

	err := row.Scan(&event.ID, &nanos, &event.Kind, &event.Note, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.Timestamp = time.Unix(0, nanos)
	event.OwnerID = ownerID.String

	return &event, nil
}

// txError переводит таймаут busy_timeout в ErrBusy
func txError(err error) error {
	if isBusy(err) {
		return storage.ErrBusy
	}
	return fmt.Errorf("transaction failed: %w", err)
}
