// Package tracker реализует машину состояний сессии поверх журнала событий
// и алгоритмы агрегации времени. Отдельного флага "таймер запущен" нет:
// активность выводится из хвоста журнала, что исключает рассинхронизацию
// между состоянием и логом.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/storage"
)

// NoteCipher абстрагирует шифрование заметок перед записью в журнал
type NoteCipher interface {
	EncryptNote(ctx context.Context, plaintext string) (string, error)
	DecryptNote(ctx context.Context, stored string) string
}

// Service предоставляет операции трекинга для одного владельца
type Service struct {
	events storage.EventStore
	cipher NoteCipher
	now    func() time.Time
}

// NewService создает новый трекер
func NewService(events storage.EventStore, cipher NoteCipher) *Service {
	return &Service{
		events: events,
		cipher: cipher,
		now:    time.Now,
	}
}

// Start appends a START event for the owner.
// Returns ErrAlreadyRunning when the owner's latest event is a START.
func (s *Service) Start(ctx context.Context, ownerID, note string) (*models.Event, error) {
	stored, err := s.cipher.EncryptNote(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt note: %w", err)
	}

	event, err := s.events.AppendStart(ctx, ownerID, s.now(), stored)
	if err != nil {
		if errors.Is(err, storage.ErrSessionOpen) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to record start: %w", err)
	}

	return event, nil
}

// Stop appends a STOP event and returns it with the elapsed session time.
// Returns ErrNotRunning when the owner has no open session.
func (s *Service) Stop(ctx context.Context, ownerID string) (*models.Event, time.Duration, error) {
	start, stop, err := s.events.AppendStop(ctx, ownerID, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrNoOpenSession) {
			return nil, 0, ErrNotRunning
		}
		return nil, 0, fmt.Errorf("failed to record stop: %w", err)
	}

	return stop, stop.Timestamp.Sub(start.Timestamp), nil
}

// ActiveSince возвращает время начала открытой сессии владельца.
// Сессия открыта тогда и только тогда, когда последнее событие - START.
func (s *Service) ActiveSince(ctx context.Context, ownerID string) (time.Time, bool, error) {
	last, err := s.events.LastEvent(ctx, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read ledger tail: %w", err)
	}

	if last.Kind != models.KindStart {
		return time.Time{}, false, nil
	}

	return last.Timestamp, true, nil
}

// Purge удаляет все события владельца (массовая очистка по запросу)
func (s *Service) Purge(ctx context.Context, ownerID string) error {
	if err := s.events.DeleteEvents(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to purge events: %w", err)
	}
	return nil
}
