package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/storage/sqlite"
)

// plainCipher - сквозной шифр для тестов трекера
type plainCipher struct{}

func (plainCipher) EncryptNote(_ context.Context, plaintext string) (string, error) {
	return plaintext, nil
}

func (plainCipher) DecryptNote(_ context.Context, stored string) string {
	return stored
}

func newTestTracker(t *testing.T) (*Service, *sqlite.Storage, *models.User) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	user := &models.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		CreatedAt:    time.Now(),
	}
	_, err = store.CreateUser(context.Background(), user)
	require.NoError(t, err)

	return NewService(store, plainCipher{}), store, user
}

func TestStartStopStateMachine(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newTestTracker(t)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return base }

	// До первого START таймер не активен
	_, active, err := svc.ActiveSince(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, active)

	event, err := svc.Start(ctx, user.ID, "morning work")
	require.NoError(t, err)
	assert.Equal(t, models.KindStart, event.Kind)

	// Второй START до STOP падает
	_, err = svc.Start(ctx, user.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	since, active, err := svc.ActiveSince(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, since.Equal(base))

	// STOP возвращает длительность
	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	stop, dur, err := svc.Stop(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KindStop, stop.Kind)
	assert.Equal(t, 30*time.Minute, dur)

	// Второй STOP падает
	_, _, err = svc.Stop(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestDailyTotalCompletedSessions(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	// START 09:00, STOP 09:30
	svc.now = func() time.Time { return day.Add(9 * time.Hour) }
	_, err := svc.Start(ctx, user.ID, "")
	require.NoError(t, err)
	svc.now = func() time.Time { return day.Add(9*time.Hour + 30*time.Minute) }
	_, _, err = svc.Stop(ctx, user.ID)
	require.NoError(t, err)

	total, err := svc.DailyTotal(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, total)

	// Инспекция идемпотентна: повторный вызов без записей дает то же
	again, err := svc.DailyTotal(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, total, again)
}

func TestDailyTotalExtrapolatesOpenSessionToday(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	// START 09:00 без STOP, запрос в 09:45 того же дня
	svc.now = func() time.Time { return day.Add(9 * time.Hour) }
	_, err := svc.Start(ctx, user.ID, "")
	require.NoError(t, err)

	svc.now = func() time.Time { return day.Add(9*time.Hour + 45*time.Minute) }
	total, err := svc.DailyTotal(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, total)
}

func TestDailyTotalNoExtrapolationForPastDays(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	// Висячий START в прошлом дне
	svc.now = func() time.Time { return day.Add(9 * time.Hour) }
	_, err := svc.Start(ctx, user.ID, "")
	require.NoError(t, err)

	// Запрос через два дня: исторический день получает ноль
	svc.now = func() time.Time { return day.AddDate(0, 0, 2).Add(10 * time.Hour) }
	total, err := svc.DailyTotal(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), total)
}

func TestDailyTotalToleratesOrphanStop(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	// Сессия началась накануне: в окне дня только STOP
	_, err := store.AppendStart(ctx, user.ID, day.Add(-2*time.Hour), "")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day.Add(1*time.Hour))
	require.NoError(t, err)

	svc.now = func() time.Time { return day.Add(12 * time.Hour) }
	total, err := svc.DailyTotal(ctx, user.ID, day)
	require.NoError(t, err)
	// STOP без предшествующего START в срезе дня не ошибка и не время
	assert.Equal(t, time.Duration(0), total)
}

func TestRangeTotal(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	seed := func(start time.Time, dur time.Duration) {
		_, err := store.AppendStart(ctx, user.ID, start, "")
		require.NoError(t, err)
		_, _, err = store.AppendStop(ctx, user.ID, start.Add(dur))
		require.NoError(t, err)
	}

	seed(day1.Add(9*time.Hour), time.Hour)
	seed(day2.Add(10*time.Hour), 2*time.Hour)

	svc.now = func() time.Time { return day3.Add(12 * time.Hour) }

	// rangeTotal(d, d) == dailyTotal(d)
	daily, err := svc.DailyTotal(ctx, user.ID, day1)
	require.NoError(t, err)
	ranged, err := svc.RangeTotal(ctx, user.ID, day1, day1)
	require.NoError(t, err)
	assert.Equal(t, daily, ranged)

	total, err := svc.RangeTotal(ctx, user.ID, day1, day3)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, total)
}

func TestRangeTotalCrossMidnightAttribution(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	// Сессия 23:00 - 01:00 через полночь
	_, err := store.AppendStart(ctx, user.ID, day1.Add(23*time.Hour), "")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day2.Add(1*time.Hour))
	require.NoError(t, err)

	svc.now = func() time.Time { return day2.Add(12 * time.Hour) }

	// День START видит только висячий START (не сегодня - ноль),
	// день STOP видит только сиротский STOP (тоже ноль): сессия через
	// полночь при пооконной агрегации не попадает ни в один день
	d1, err := svc.DailyTotal(ctx, user.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d1)

	d2, err := svc.DailyTotal(ctx, user.ID, day2)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d2)
}

func TestFirstStartOfDay(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	_, ok, err := svc.FirstStartOfDay(ctx, user.ID, day)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.AppendStart(ctx, user.ID, day.Add(8*time.Hour+15*time.Minute), "")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day.Add(9*time.Hour))
	require.NoError(t, err)
	_, err = store.AppendStart(ctx, user.ID, day.Add(14*time.Hour), "")
	require.NoError(t, err)

	first, ok, err := svc.FirstStartOfDay(ctx, user.ID, day)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, first.Equal(day.Add(8*time.Hour+15*time.Minute)))
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	_, err := store.AppendStart(ctx, user.ID, day.Add(9*time.Hour), "standup")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day.Add(10*time.Hour))
	require.NoError(t, err)
	_, err = store.AppendStart(ctx, user.ID, day.Add(11*time.Hour), "review")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day.Add(12*time.Hour+30*time.Minute))
	require.NoError(t, err)
	// Открытая сессия в ленту завершенных не попадает
	_, err = store.AppendStart(ctx, user.ID, day.Add(14*time.Hour), "open")
	require.NoError(t, err)

	sessions, err := svc.Sessions(ctx, user.ID, day, day)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "standup", sessions[0].Note)
	assert.Equal(t, time.Hour, sessions[0].Duration())
	assert.Equal(t, "review", sessions[1].Note)
	assert.Equal(t, 90*time.Minute, sessions[1].Duration())
	assert.True(t, sessions[0].Start.Before(sessions[1].Start))
}

func TestEventsFeed(t *testing.T) {
	ctx := context.Background()
	svc, store, user := newTestTracker(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	_, err := store.AppendStart(ctx, user.ID, day.Add(9*time.Hour), "note")
	require.NoError(t, err)
	_, _, err = store.AppendStop(ctx, user.ID, day.Add(10*time.Hour))
	require.NoError(t, err)

	events, err := svc.Events(ctx, user.ID, day, day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.KindStart, events[0].Kind)
	assert.Equal(t, "note", events[0].Note)
	assert.Equal(t, models.KindStop, events[1].Kind)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newTestTracker(t)

	svc.now = time.Now
	_, err := svc.Start(ctx, user.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.Purge(ctx, user.ID))

	_, active, err := svc.ActiveSince(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, active)
}
