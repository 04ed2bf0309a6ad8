package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/avdeyev/worklog/internal/storage"
)

// Service выполняет бэкапы и ведет отметку последнего запуска в settings
type Service struct {
	settings  storage.SettingsStore
	dbPath    string
	backupDir string
	now       func() time.Time
}

// NewService создает сервис бэкапов
func NewService(settings storage.SettingsStore, dbPath, backupDir string) *Service {
	return &Service{
		settings:  settings,
		dbPath:    dbPath,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// Run copies the database file into the backup directory and stamps the
// last-run setting. Returns the backup file path.
func (s *Service) Run(ctx context.Context) (string, error) {
	if _, err := os.Stat(s.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist yet: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := s.now()
	name := fmt.Sprintf("%s_%s", filepath.Base(s.dbPath), now.Format("2006-01-02_15-04"))
	target := filepath.Join(s.backupDir, name)

	if err := copyFile(s.dbPath, target); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	if err := s.settings.SetSetting(ctx, storage.KeyBackupLastRun, now.Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("failed to stamp last backup: %w", err)
	}

	return target, nil
}

// ShouldRunNow читает настроенную частоту и отметку последнего бэкапа
// и решает, пора ли делать копию
func (s *Service) ShouldRunNow(ctx context.Context) (bool, error) {
	raw, err := s.settings.GetSetting(ctx, storage.KeyBackupFrequency)
	if err != nil && !errors.Is(err, storage.ErrSettingNotFound) {
		return false, fmt.Errorf("failed to read backup frequency: %w", err)
	}

	freq, err := ParseFrequency(raw)
	if err != nil {
		return false, err
	}

	var (
		last    time.Time
		hasLast bool
	)
	stamp, err := s.settings.GetSetting(ctx, storage.KeyBackupLastRun)
	if err == nil {
		last, err = time.Parse(time.RFC3339, stamp)
		if err != nil {
			return false, fmt.Errorf("corrupted last-backup stamp: %w", err)
		}
		hasLast = true
	} else if !errors.Is(err, storage.ErrSettingNotFound) {
		return false, fmt.Errorf("failed to read last backup stamp: %w", err)
	}

	return Due(freq, last, hasLast, s.now()), nil
}

// MaybeRun opportunistically выполняет плановый бэкап на каждом запуске.
// Любые сбои здесь - побочный эффект чужой команды: логируются и
// проглатываются, команда пользователя не прерывается.
func (s *Service) MaybeRun(ctx context.Context) {
	due, err := s.ShouldRunNow(ctx)
	if err != nil {
		slog.Warn("scheduled backup check failed", "error", err)
		return
	}
	if !due {
		return
	}

	path, err := s.Run(ctx)
	if err != nil {
		slog.Warn("scheduled backup failed", "error", err)
		return
	}

	slog.Info("scheduled backup created", "path", path)
}

// copyFile копирует файл БД байт в байт
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
