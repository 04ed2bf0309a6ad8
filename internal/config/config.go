// Package config загружает конфигурацию процесса из окружения.
// Все персистентные настройки приложения живут в таблице settings;
// здесь только то, что нужно до открытия БД - пути.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config contains process configuration parameters.
type Config struct {
	// DataDir - корневой каталог данных, по умолчанию ~/.worklog
	DataDir string `env:"DATA_DIR"`
	// DBPath - путь к файлу SQLite, по умолчанию <DataDir>/worklog.db
	DBPath string `env:"DB_PATH"`
	// BackupDir - каталог бэкапов, по умолчанию <DataDir>/backup
	BackupDir string `env:"BACKUP_DIR"`
	// KeyringPath - путь к файлу секретов, по умолчанию <DataDir>/keyring.db
	KeyringPath string `env:"KEYRING_PATH"`
}

// Load reads WORKLOG_* environment variables and fills in defaults.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "WORKLOG_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// Нет домашнего каталога (экзотика) - работаем в текущем
			cfg.DataDir = ".worklog"
		} else {
			cfg.DataDir = filepath.Join(home, ".worklog")
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "worklog.db")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.DataDir, "backup")
	}
	if cfg.KeyringPath == "" {
		cfg.KeyringPath = filepath.Join(cfg.DataDir, "keyring.db")
	}

	return &cfg, nil
}

// EnsureDataDir создает каталог данных, если его еще нет
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", c.DataDir, err)
	}
	return nil
}
