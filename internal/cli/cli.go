// Package cli связывает команды терминала с сервисами ядра.
// Разбор аргументов и рендеринг - периферийный клей: вся логика живет
// в auth/tracker/notes/backup, сюда попадают только typed-результаты
// и typed-ошибки.
package cli

import (
	"context"
	"fmt"

	"github.com/avdeyev/worklog/internal/auth"
	"github.com/avdeyev/worklog/internal/backup"
	"github.com/avdeyev/worklog/internal/notes"
	"github.com/avdeyev/worklog/internal/storage"
	"github.com/avdeyev/worklog/internal/tracker"
)

// App агрегирует сервисы ядра для выполнения команд
type App struct {
	Auth     *auth.Service
	Tracker  *tracker.Service
	Notes    *notes.Service
	Backup   *backup.Service
	Settings storage.SettingsStore
	DBPath   string
}

// Run выполняет одну команду. Ошибка возвращается наружу: main печатает
// ее и завершает процесс с ненулевым кодом.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "on":
		return a.runOn(ctx, args)
	case "off":
		return a.runOff(ctx)
	case "status":
		return a.runStatus(ctx)
	case "today":
		return a.runToday(ctx)
	case "day":
		return a.runDay(ctx, args)
	case "range":
		return a.runRange(ctx, args)
	case "first":
		return a.runFirst(ctx, args)
	case "export":
		return a.runExport(ctx, args)
	case "register":
		return a.runRegister(ctx)
	case "login":
		return a.runLogin(ctx)
	case "logout":
		return a.runLogout(ctx)
	case "unregister":
		return a.runUnregister(ctx)
	case "encrypt":
		return a.runEncrypt(ctx, args)
	case "rotate-key":
		return a.runRotateKey(ctx)
	case "backup":
		return a.runBackup(ctx)
	case "purge":
		return a.runPurge(ctx)
	case "config":
		return a.runConfig(ctx, args)
	case "db":
		fmt.Printf("Database path: %s\n", a.DBPath)
		return nil
	case "help", "":
		PrintUsage()
		return nil
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
