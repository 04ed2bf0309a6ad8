package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/storage"
)

// dayWindow возвращает границы календарного дня [полночь, полночь+24ч)
// в таймзоне переданной даты
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// sameDay reports whether two instants fall on one calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DailyTotal суммирует длительности завершенных сессий владельца за
// календарный день. Незакрытый START учитывается как "now - start",
// только если день совпадает с сегодняшним: живая сессия накапливает
// время в "сегодня", но ничего не добавляет историческим датам.
func (s *Service) DailyTotal(ctx context.Context, ownerID string, day time.Time) (time.Duration, error) {
	from, to := dayWindow(day)

	events, err := s.events.EventsInRange(ctx, ownerID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load events: %w", err)
	}

	return replayTotal(events, day, s.now()), nil
}

// replayTotal проигрывает события одного дня в хронологическом порядке.
// Висячий START в конце дня и STOP без START в начале дня не ошибка:
// границы сессии могут легитимно лежать за пределами окна одного дня.
func replayTotal(events []models.Event, day, now time.Time) time.Duration {
	var (
		total        time.Duration
		sessionStart *time.Time
	)

	for _, event := range events {
		switch event.Kind {
		case models.KindStart:
			if sessionStart == nil {
				ts := event.Timestamp
				sessionStart = &ts
			}
		case models.KindStop:
			if sessionStart != nil {
				total += event.Timestamp.Sub(*sessionStart)
				sessionStart = nil
			}
		}
	}

	// Экстраполяция открытой сессии до "сейчас" - только для сегодня
	if sessionStart != nil && sameDay(day, now) {
		total += now.Sub(*sessionStart)
	}

	return total
}

// RangeTotal суммирует DailyTotal по каждому календарному дню диапазона
// [from, to] включительно. Это НЕ один проход по всему диапазону: сессия
// через полночь целиком относится к дню своего START.
func (s *Service) RangeTotal(ctx context.Context, ownerID string, from, to time.Time) (time.Duration, error) {
	var total time.Duration

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		daily, err := s.DailyTotal(ctx, ownerID, day)
		if err != nil {
			return 0, err
		}
		total += daily
	}

	return total, nil
}

// FirstStartOfDay возвращает время самого раннего START за календарный
// день, ok=false если в этот день сессии не начинались
func (s *Service) FirstStartOfDay(ctx context.Context, ownerID string, day time.Time) (time.Time, bool, error) {
	from, to := dayWindow(day)

	first, err := s.events.FirstStartInRange(ctx, ownerID, from, to)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to find first start: %w", err)
	}

	return first.Timestamp, true, nil
}

// Sessions возвращает завершенные сессии владельца за диапазон дней
// [from, to] включительно с расшифрованными заметками, упорядоченные
// по времени начала. Read-only лента для экспорта и отчетов.
func (s *Service) Sessions(ctx context.Context, ownerID string, from, to time.Time) ([]models.Session, error) {
	events, err := s.rangeEvents(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	var (
		sessions []models.Session
		start    *models.Event
	)

	for i := range events {
		event := &events[i]
		switch event.Kind {
		case models.KindStart:
			if start == nil {
				start = event
			}
		case models.KindStop:
			if start != nil {
				sessions = append(sessions, models.Session{
					Start: start.Timestamp,
					End:   event.Timestamp,
					Note:  s.cipher.DecryptNote(ctx, start.Note),
				})
				start = nil
			}
		}
	}

	return sessions, nil
}

// Events возвращает сырые события владельца за диапазон дней с
// расшифрованными заметками - read-only лента для AI-сводок
func (s *Service) Events(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	events, err := s.rangeEvents(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].Note = s.cipher.DecryptNote(ctx, events[i].Note)
	}

	return events, nil
}

func (s *Service) rangeEvents(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	lo, _ := dayWindow(from)
	_, hi := dayWindow(to)

	events, err := s.events.EventsInRange(ctx, ownerID, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	return events, nil
}
