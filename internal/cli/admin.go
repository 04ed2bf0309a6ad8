package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeyev/worklog/internal/backup"
	"github.com/avdeyev/worklog/internal/storage"
)

// runBackup выполняет ручной бэкап БД вне расписания
func (a *App) runBackup(ctx context.Context) error {
	if _, err := a.Auth.RequireLogin(ctx); err != nil {
		return err
	}

	path, err := a.Backup.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Backup saved to %s\n", path)
	return nil
}

// runPurge удаляет все события текущего пользователя после подтверждения
func (a *App) runPurge(ctx context.Context) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete ALL tracked events of %s?", user.Username))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.Tracker.Purge(ctx, user.ID); err != nil {
		return err
	}

	fmt.Println("All events deleted.")
	return nil
}

// runConfig читает и меняет настройки приложения.
// language и ui доступны без логина, backup и ai - только после входа.
func (a *App) runConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.printConfig(ctx)
	}

	switch args[0] {
	case "language":
		if len(args) != 2 {
			return fmt.Errorf("usage: worklog config language <code>")
		}
		return a.setAndReport(ctx, storage.KeyLanguage, args[1], "Language set to %s.\n")

	case "ui":
		if len(args) != 2 || (args[1] != "plain" && args[1] != "fancy") {
			return fmt.Errorf("usage: worklog config ui <plain|fancy>")
		}
		return a.setAndReport(ctx, storage.KeyUIMode, args[1], "UI mode set to %s.\n")

	case "backup":
		if _, err := a.Auth.RequireLogin(ctx); err != nil {
			return err
		}
		if len(args) != 2 {
			return fmt.Errorf("usage: worklog config backup <never|daily|monthly|every-N>")
		}
		freq, err := backup.ParseFrequency(args[1])
		if err != nil {
			return err
		}
		return a.setAndReport(ctx, storage.KeyBackupFrequency, freq.String(), "Backup frequency set to %s.\n")

	case "ai":
		if _, err := a.Auth.RequireLogin(ctx); err != nil {
			return err
		}
		if len(args) != 3 {
			return fmt.Errorf("usage: worklog config ai <provider> <api-key>")
		}
		if err := a.Settings.SetSetting(ctx, storage.KeyAIProvider, args[1]); err != nil {
			return err
		}
		if err := a.Settings.SetSetting(ctx, storage.KeyAIToken, args[2]); err != nil {
			return err
		}
		fmt.Printf("AI provider set to %s.\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown config key: %s", args[0])
	}
}

func (a *App) setAndReport(ctx context.Context, key, value, format string) error {
	if err := a.Settings.SetSetting(ctx, key, value); err != nil {
		return err
	}
	fmt.Printf(format, value)
	return nil
}

// printConfig показывает текущие значения настроек
func (a *App) printConfig(ctx context.Context) error {
	entries := []struct {
		label    string
		key      string
		fallback string
	}{
		{"language", storage.KeyLanguage, "en"},
		{"ui", storage.KeyUIMode, "plain"},
		{"backup", storage.KeyBackupFrequency, "never"},
		{"ai provider", storage.KeyAIProvider, "not set"},
	}

	for _, entry := range entries {
		value, err := a.Settings.GetSetting(ctx, entry.key)
		if errors.Is(err, storage.ErrSettingNotFound) {
			value = entry.fallback
		} else if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", entry.label+":", value)
	}

	return nil
}
