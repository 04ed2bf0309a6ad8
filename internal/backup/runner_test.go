package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/worklog/internal/storage"
	"github.com/avdeyev/worklog/internal/storage/sqlite"
)

func newTestBackup(t *testing.T) (*Service, *sqlite.Storage, string) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "worklog.db")

	store, err := sqlite.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	backupDir := filepath.Join(dir, "backup")
	return NewService(store, dbPath, backupDir), store, backupDir
}

func TestRunCreatesBackupAndStampsSettings(t *testing.T) {
	ctx := context.Background()
	svc, store, backupDir := newTestBackup(t)

	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	svc.now = func() time.Time { return at }

	path, err := svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(backupDir, "worklog.db_2025-03-10_14-30"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	stamp, err := store.GetSetting(ctx, storage.KeyBackupLastRun)
	require.NoError(t, err)
	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}

func TestRunFailsWithoutDatabase(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestBackup(t)
	svc.dbPath = filepath.Join(t.TempDir(), "missing.db")

	_, err := svc.Run(ctx)
	assert.Error(t, err)
}

func TestShouldRunNow(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestBackup(t)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// Частота не настроена - по умолчанию never
	due, err := svc.ShouldRunNow(ctx)
	require.NoError(t, err)
	assert.False(t, due)

	// monthly без отметки - bootstrap
	require.NoError(t, store.SetSetting(ctx, storage.KeyBackupFrequency, "monthly"))
	due, err = svc.ShouldRunNow(ctx)
	require.NoError(t, err)
	assert.True(t, due)

	// Отметка в прошлом месяце - пора
	last := time.Date(2025, 2, 20, 9, 0, 0, 0, time.Local)
	require.NoError(t, store.SetSetting(ctx, storage.KeyBackupLastRun, last.Format(time.RFC3339)))
	due, err = svc.ShouldRunNow(ctx)
	require.NoError(t, err)
	assert.True(t, due)

	// Отметка в этом месяце - рано
	require.NoError(t, store.SetSetting(ctx, storage.KeyBackupLastRun,
		now.Add(-time.Hour).Format(time.RFC3339)))
	due, err = svc.ShouldRunNow(ctx)
	require.NoError(t, err)
	assert.False(t, due)
}

func TestMaybeRunSwallowsFailures(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestBackup(t)

	require.NoError(t, store.SetSetting(ctx, storage.KeyBackupFrequency, "daily"))
	svc.dbPath = filepath.Join(t.TempDir(), "missing.db")

	// Не должно паниковать и не должно возвращать ошибку наружу
	svc.MaybeRun(ctx)

	// Отметка не проставлена после неудачи
	_, err := store.GetSetting(ctx, storage.KeyBackupLastRun)
	assert.ErrorIs(t, err, storage.ErrSettingNotFound)
}

func TestMaybeRunCreatesDueBackup(t *testing.T) {
	ctx := context.Background()
	svc, store, backupDir := newTestBackup(t)

	require.NoError(t, store.SetSetting(ctx, storage.KeyBackupFrequency, "daily"))

	svc.MaybeRun(ctx)

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = store.GetSetting(ctx, storage.KeyBackupLastRun)
	assert.NoError(t, err)
}
